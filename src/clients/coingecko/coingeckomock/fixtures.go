package coingeckomock

import (
	"io"
	"os"
)

// ReadResponseFromFile returns the raw content of a saved provider response.
func ReadResponseFromFile(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
