// Package imageupload validates cover images and converts them to data URIs
// for storage alongside the story that uses them.
package imageupload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	// MaxFileSize is the largest accepted upload.
	MaxFileSize = 5 * 1024 * 1024

	// compressThreshold is the size above which sources are downscaled and
	// re-encoded instead of embedded as-is.
	compressThreshold = 1024 * 1024

	maxDimension = 1200
	jpegQuality  = 80
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Result is the contract with the editor: either a data URI plus a generated
// filename, or an error message to surface to the user.
type Result struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Validate checks an upload against the accepted formats and size limit.
// The content type is sniffed from the bytes, not taken from the filename.
func Validate(data []byte) error {
	if len(data) == 0 {
		return errors.New("no file selected")
	}
	if !supportedTypes[http.DetectContentType(data)] {
		return errors.New("unsupported file format, please use JPEG, PNG, GIF, or WebP")
	}
	if len(data) > MaxFileSize {
		return errors.New("file too large, please use an image smaller than 5MB")
	}
	return nil
}

// Process validates an upload and returns it as a data URI. Sources over 1MB
// are decoded, downscaled so the longest side is at most 1200px, and
// re-encoded as JPEG; smaller sources are embedded unchanged.
func Process(name string, data []byte) Result {
	if err := Validate(data); err != nil {
		return Result{Error: err.Error()}
	}

	mime := http.DetectContentType(data)
	url := dataURL(mime, data)
	if len(data) > compressThreshold {
		compressed, err := compress(data, mime)
		if err != nil {
			return Result{Error: fmt.Sprintf("failed to compress image: %v", err)}
		}
		url = compressed
	}

	return Result{
		Success:  true,
		ImageURL: url,
		Filename: UniqueFilename(name),
	}
}

// compress decodes, downscales, and re-encodes a large source as JPEG.
// Animated GIFs are flattened to their first frame.
func compress(data []byte, mime string) (string, error) {
	src, err := decode(data, mime)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxDimension || h > maxDimension {
		ratio := float64(maxDimension) / float64(w)
		if r := float64(maxDimension) / float64(h); r < ratio {
			ratio = r
		}
		w = int(float64(w)*ratio + 0.5)
		h = int(float64(h)*ratio + 0.5)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return dataURL("image/jpeg", buf.Bytes()), nil
}

// decode handles webp explicitly; the stdlib formats register themselves
// with image.Decode.
func decode(data []byte, mime string) (image.Image, error) {
	if mime == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// UniqueFilename derives a fresh reference name for an upload, keeping the
// original extension.
func UniqueFilename(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("image_%s.%s", uuid.NewString(), ext)
}
