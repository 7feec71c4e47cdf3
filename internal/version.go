package internal

// Version is the library version, reported in the default User-Agent header.
const Version = "1.0.0"
