package storage

import "os"

// SourceBytes returns the combined size in bytes of the given corpus source files.
// Missing paths contribute 0; other stat errors are returned.
func SourceBytes(paths ...string) (int64, error) {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		if !info.IsDir() {
			total += info.Size()
		}
	}
	return total, nil
}
