package types

// Version is the canonical project version.
// The CLI and the embedded library surface share this constant.
const Version = "0.2.0"
