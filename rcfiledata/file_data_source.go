package rcfiledata

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/typedrest/go-rest-client/interfaces"
)

// ReloaderFactory is a function type used with SourceBuilder.Reloader to specify a
// mechanism for detecting when data files should be reloaded. Its standard
// implementation is rcfilewatch.WatchFiles.
type ReloaderFactory func(paths []string, loggers ldlog.Loggers, reload func(), closeCh <-chan struct{}) error

// SourceBuilder is a builder for configuring the file-based property source.
//
// Obtain one with DataSource(). Builder calls can be chained:
//
//	rcfiledata.DataSource().FilePaths("file1").FilePaths("file2")
type SourceBuilder struct {
	filePaths       []string
	reloaderFactory ReloaderFactory
}

// DataSource returns a configurable builder for a file-based property source.
func DataSource() *SourceBuilder {
	return &SourceBuilder{}
}

// FilePaths specifies the input data files, as any number of absolute or relative
// paths. When the same key appears in several files, the last file wins.
func (b *SourceBuilder) FilePaths(paths ...string) *SourceBuilder {
	b.filePaths = append(b.filePaths, paths...)
	return b
}

// Reloader specifies a mechanism for reloading data files, normally
// rcfilewatch.WatchFiles.
func (b *SourceBuilder) Reloader(reloaderFactory ReloaderFactory) *SourceBuilder {
	b.reloaderFactory = reloaderFactory
	return b
}

// CreatePropertyResolver loads the files and returns the resolver. The returned
// FileDataSource should be closed when no longer needed if a reloader is configured.
//
// The initial load must succeed; later reload failures leave the previous data in
// place and are logged.
func (b *SourceBuilder) CreatePropertyResolver(loggers ldlog.Loggers) (*FileDataSource, error) {
	return newFileDataSource(b.filePaths, b.reloaderFactory, loggers)
}

var _ interfaces.PropertyResolver = (*FileDataSource)(nil)
