package ports

// Fingerprinter computes content fingerprints for the content check mode.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// Fingerprint hashes the file's content.
	Fingerprint(path string) (uint64, error)
}
