package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// maxImageSize caps embedded product images at 5 MB, the same limit the
// admin panel's upload form enforces.
const maxImageSize = 5 * 1024 * 1024

// LoadImageDataURI reads a local image file and returns it as a base64 data
// URI for the product's image field. Non-image files and files over the
// size limit are rejected before any store state changes.
func LoadImageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageSize {
		return "", fmt.Errorf("image %s exceeds the 5 MB limit", path)
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, contentType)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
