package photobooth

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG stickers and frames
	_ "image/png"  // register PNG stickers and frames
	"io/fs"
	"log/slog"

	_ "golang.org/x/image/webp" // register WebP stickers
)

const loaderQueueCap = 64

// Asset is an image resource that may still be decoding. Readiness only
// changes on the goroutine that calls AssetLoader.Poll or AssetLoader.Wait,
// so Ready and Image are safe to call from the same loop without locking.
type Asset struct {
	Name  string
	img   image.Image
	ready bool
	err   error
}

// NewReadyAsset wraps an already decoded image.
func NewReadyAsset(name string, img image.Image) *Asset {
	return &Asset{Name: name, img: img, ready: true}
}

// Ready reports whether the asset has finished decoding successfully.
func (a *Asset) Ready() bool {
	return a != nil && a.ready
}

// Image returns the decoded pixels, or nil while the asset is not ready.
func (a *Asset) Image() image.Image {
	if !a.Ready() {
		return nil
	}
	return a.img
}

// Err returns the decode error, if decoding failed.
func (a *Asset) Err() error {
	if a == nil {
		return nil
	}
	return a.err
}

// Size returns the decoded pixel dimensions, or ErrAssetNotReady.
func (a *Asset) Size() (int, int, error) {
	if !a.Ready() {
		return 0, 0, fmt.Errorf("size of %q: %w", a.Name, ErrAssetNotReady)
	}
	b := a.img.Bounds()
	return b.Dx(), b.Dy(), nil
}

type decodeResult struct {
	asset *Asset
	img   image.Image
	err   error
	cache bool
}

// AssetLoader decodes images on background goroutines and hands the results
// back through a channel. Poll applies completions on the caller's goroutine.
type AssetLoader struct {
	fsys    fs.FS
	done    chan decodeResult
	pending int
	cache   map[string]image.Image
	log     *slog.Logger
}

// NewAssetLoader creates a loader that resolves names against fsys. fsys may
// be nil when only in-memory data is decoded.
func NewAssetLoader(fsys fs.FS, log *slog.Logger) *AssetLoader {
	if log == nil {
		log = slog.Default()
	}
	return &AssetLoader{
		fsys:  fsys,
		done:  make(chan decodeResult, loaderQueueCap),
		cache: make(map[string]image.Image),
		log:   log,
	}
}

// Decode starts decoding data and returns the not-yet-ready asset.
func (l *AssetLoader) Decode(name string, data []byte) *Asset {
	a := &Asset{Name: name}
	l.pending++
	go func() {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("decode %s: %w", name, err)
		}
		l.done <- decodeResult{asset: a, img: img, err: err}
	}()
	return a
}

// Open starts loading name from the loader's filesystem. Names decoded
// before are served from cache but still complete through Poll.
func (l *AssetLoader) Open(name string) *Asset {
	a := &Asset{Name: name}
	l.pending++
	if img, ok := l.cache[name]; ok {
		go func() { l.done <- decodeResult{asset: a, img: img} }()
		return a
	}
	fsys := l.fsys
	go func() {
		if fsys == nil {
			l.done <- decodeResult{asset: a, err: fmt.Errorf("open %s: no sticker filesystem", name)}
			return
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			l.done <- decodeResult{asset: a, err: fmt.Errorf("open %s: %w", name, err)}
			return
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("decode %s: %w", name, err)
		}
		l.done <- decodeResult{asset: a, img: img, err: err, cache: true}
	}()
	return a
}

// Pending returns the number of decodes that have not been applied yet.
func (l *AssetLoader) Pending() int {
	return l.pending
}

// Poll applies every completed decode without blocking and returns the
// assets that changed state.
func (l *AssetLoader) Poll() []*Asset {
	var changed []*Asset
	for {
		select {
		case r := <-l.done:
			changed = append(changed, l.apply(r))
		default:
			return changed
		}
	}
}

// Wait blocks until at least one decode completes, applies it along with
// any others already finished, and returns the changed assets.
func (l *AssetLoader) Wait(ctx context.Context) ([]*Asset, error) {
	if l.pending == 0 {
		return nil, nil
	}
	select {
	case r := <-l.done:
		changed := []*Asset{l.apply(r)}
		return append(changed, l.Poll()...), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *AssetLoader) apply(r decodeResult) *Asset {
	l.pending--
	if r.err != nil {
		r.asset.err = r.err
		l.log.Warn("asset decode failed", "asset", r.asset.Name, "err", r.err)
		return r.asset
	}
	r.asset.img = r.img
	r.asset.ready = true
	if r.cache {
		l.cache[r.asset.Name] = r.img
	}
	return r.asset
}
