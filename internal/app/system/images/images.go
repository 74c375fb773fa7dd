// Package images removes hostel images from Cloudinary.
package images

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Deleter removes stored images by URL.
type Deleter interface {
	DeleteURLs(ctx context.Context, urls []string) (deleted int)
}

// Cloudinary deletes images hosted on res.cloudinary.com.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
	log *zap.Logger
}

// NewCloudinary connects with explicit credentials.
func NewCloudinary(cloud, key, secret string, log *zap.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloud, key, secret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld, log: log}, nil
}

// DeleteURLs destroys each image it can identify. Failures are logged and
// skipped; the number actually destroyed is returned.
func (c *Cloudinary) DeleteURLs(ctx context.Context, urls []string) int {
	deleted := 0
	for _, u := range urls {
		id, ok := PublicIDFromURL(u)
		if !ok {
			c.log.Debug("not a cloudinary image url", zap.String("url", u))
			continue
		}
		res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
		if err != nil {
			c.log.Warn("image delete failed", zap.String("public_id", id), zap.Error(err))
			continue
		}
		if res.Error.Message != "" {
			c.log.Warn("image delete rejected", zap.String("public_id", id), zap.String("error", res.Error.Message))
			continue
		}
		if res.Result == "ok" {
			deleted++
		}
	}
	return deleted
}

// Noop is used when Cloudinary is not configured.
type Noop struct{}

func (Noop) DeleteURLs(context.Context, []string) int { return 0 }

// PublicIDFromURL extracts the public id from a Cloudinary delivery URL:
//
//	https://res.cloudinary.com/<cloud>/image/upload/[<transforms>/][v<version>/]<public_id>.<ext>
//
// The public id keeps its folders and drops the extension.
func PublicIDFromURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.HasSuffix(u.Host, "cloudinary.com") {
		return "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	i := indexOf(parts, "upload")
	if i < 0 || i == len(parts)-1 {
		return "", false
	}
	rest := parts[i+1:]

	// skip transformation segments (they contain commas or key_value pairs)
	// up to an optional version segment
	for j, p := range rest {
		if isVersion(p) {
			rest = rest[j+1:]
			break
		}
	}
	for len(rest) > 1 && isTransform(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", false
	}

	id := strings.Join(rest, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" {
		return "", false
	}
	return id, true
}

func indexOf(parts []string, s string) int {
	for i, p := range parts {
		if p == s {
			return i
		}
	}
	return -1
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isTransform(s string) bool {
	return strings.Contains(s, ",") || (len(s) > 2 && s[1] == '_' && strings.IndexByte("abcdefghijklmnopqrstuvwxyz", s[0]) >= 0)
}
