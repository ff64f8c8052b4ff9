// Package validation checks merge inputs and download responses.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ErrNotVideo is returned when a file does not start with a known video
// container signature.
var ErrNotVideo = errors.New("not a recognized video container")

var videoMIMETypes = map[string]bool{
	"video/mp4":        true,
	"video/quicktime":  true,
	"video/3gpp":       true,
	"video/webm":       true,
	"video/x-matroska": true,
	"video/avi":        true,
	"video/x-msvideo":  true,
	"video/mp2t":       true,
	"video/mpeg":       true,
	"video/x-flv":      true,
	"application/ogg":  true,
}

// magicBytesBufferSize is the number of bytes to read for content type detection.
const magicBytesBufferSize = 512

// mpegTSPacket is the fixed MPEG transport stream packet length.
const mpegTSPacket = 188

// SniffVideo reads the leading bytes of reader, detects the container and
// rewinds the reader. allowed reports whether the container is one ffmpeg can
// be fed as a merge input.
func SniffVideo(reader io.ReadSeeker) (mime string, allowed bool, err error) {
	buf := make([]byte, magicBytesBufferSize)
	n, err := io.ReadFull(reader, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false, err
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", false, err
	}

	if n == 0 {
		return "application/octet-stream", false, nil
	}
	buf = buf[:n]

	mime = detectContainer(buf)
	if mime == "" {
		mime = http.DetectContentType(buf)
	}
	return mime, videoMIMETypes[mime], nil
}

// CheckVideoFile opens path and rejects it unless it looks like a video.
func CheckVideoFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	mime, allowed, err := SniffVideo(f)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if !allowed {
		return fmt.Errorf("%w (detected %s)", ErrNotVideo, mime)
	}
	return nil
}

// detectContainer handles containers http.DetectContentType misses or
// reports too coarsely.
func detectContainer(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// EBML header: WebM declares its doctype, anything else is Matroska
	if buf[0] == 0x1A && buf[1] == 0x45 && buf[2] == 0xDF && buf[3] == 0xA3 {
		if bytes.Contains(buf, []byte("webm")) {
			return "video/webm"
		}
		return "video/x-matroska"
	}

	if buf[0] == 'F' && buf[1] == 'L' && buf[2] == 'V' && buf[3] == 0x01 {
		return "video/x-flv"
	}

	if len(buf) >= 12 && string(buf[0:4]) == "RIFF" && string(buf[8:12]) == "AVI " {
		return "video/x-msvideo"
	}

	// [4 bytes size]["ftyp"][brand]
	if len(buf) >= 12 && string(buf[4:8]) == "ftyp" {
		brand := string(buf[8:12])
		switch {
		case brand == "qt  ":
			return "video/quicktime"
		case brand[:3] == "3gp" || brand[:3] == "3g2":
			return "video/3gpp"
		default:
			return "video/mp4"
		}
	}

	if buf[0] == 0x47 && len(buf) > mpegTSPacket && buf[mpegTSPacket] == 0x47 {
		return "video/mp2t"
	}

	return ""
}
