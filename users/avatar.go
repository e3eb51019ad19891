package users

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/disintegration/imaging"
)

const (
	// MaxAvatarBytes is the largest accepted upload.
	MaxAvatarBytes = 1_000_000
	// AvatarSize is the edge length, in pixels, of every stored avatar.
	AvatarSize = 250
)

var avatarFilename = regexp.MustCompile(`(?i)\.(jpg|jpeg|png)$`)

// AcceptsAvatarFilename reports whether the uploaded file name has an image extension we take.
func AcceptsAvatarFilename(name string) bool {
	return avatarFilename.MatchString(name)
}

// NormalizeAvatar decodes an uploaded image, crops and scales it to a square
// AvatarSize x AvatarSize, and re-encodes it as PNG.
func NormalizeAvatar(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}

	thumb := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
