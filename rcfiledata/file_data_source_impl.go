package rcfiledata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/ghodss/yaml.v1"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// FileDataSource is a property resolver backed by one or more local files. Use
// DataSource() to configure and create one.
type FileDataSource struct {
	absFilePaths    []string
	loggers         ldlog.Loggers
	lock            sync.RWMutex
	properties      map[string]ldvalue.Value
	closeOnce       sync.Once
	closeReloaderCh chan struct{}
}

func newFileDataSource(
	filePaths []string,
	reloaderFactory ReloaderFactory,
	loggers ldlog.Loggers,
) (*FileDataSource, error) {
	abs, err := absFilePaths(filePaths)
	if err != nil {
		// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
		return nil, err
	}

	fs := &FileDataSource{
		absFilePaths: abs,
		loggers:      loggers,
	}
	fs.loggers.SetPrefix("FileDataSource:")

	if err := fs.load(); err != nil {
		return nil, err
	}

	if reloaderFactory != nil {
		fs.closeReloaderCh = make(chan struct{})
		if err := reloaderFactory(fs.absFilePaths, fs.loggers, fs.reload, fs.closeReloaderCh); err != nil {
			return nil, fmt.Errorf("unable to start reloader: %s", err)
		}
	}
	return fs, nil
}

// OptionalValue returns the value for a property key, if the files define one.
func (fs *FileDataSource) OptionalValue(key string) (ldvalue.Value, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	v, ok := fs.properties[key]
	return v, ok
}

func (fs *FileDataSource) load() error {
	merged := make(map[string]ldvalue.Value)
	for _, path := range fs.absFilePaths {
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("%s [%s]", err, path)
		}
		for key, value := range data {
			merged[key] = ldvalue.CopyArbitraryValue(value)
		}
	}
	fs.lock.Lock()
	fs.properties = merged
	fs.lock.Unlock()
	return nil
}

// reload rereads all of the configured files and replaces the property set. If any
// file cannot be loaded or parsed, the previous property set is left unchanged.
func (fs *FileDataSource) reload() {
	if err := fs.load(); err != nil {
		fs.loggers.Errorf("Unable to load properties: %s", err)
		return
	}
	fs.loggers.Debug("Reloaded property files")
}

func absFilePaths(paths []string) ([]string, error) {
	absPaths := make([]string, 0)
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
			return nil, fmt.Errorf("unable to determine absolute path for '%s'", p)
		}
		absPaths = append(absPaths, absPath)
	}
	return absPaths, nil
}

func readFile(path string) (map[string]interface{}, error) {
	rawData, err := os.ReadFile(path) // nolint:gosec // G304: ok to read file into variable
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %s", err)
	}
	data := make(map[string]interface{})
	if detectJSON(rawData) {
		err = json.Unmarshal(rawData, &data)
	} else {
		err = yaml.Unmarshal(rawData, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %s", err)
	}
	return data, nil
}

func detectJSON(rawData []byte) bool {
	// A valid JSON file for our purposes must be an object, i.e. it must start with '{'
	return strings.HasPrefix(strings.TrimLeftFunc(string(rawData), unicode.IsSpace), "{")
}

// Close stops the reloader, if one was configured.
func (fs *FileDataSource) Close() error {
	fs.closeOnce.Do(func() {
		if fs.closeReloaderCh != nil {
			close(fs.closeReloaderCh)
		}
	})
	return nil
}
