// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sigcanvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/sigpad"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("sigcanvas: canvas is closed")

	// ErrNilSurface is returned when a nil Surface is passed.
	ErrNilSurface = errors.New("sigcanvas: nil Surface")

	// ErrUnsupportedFormat is returned for texture formats other than 8-bit
	// RGBA or BGRA.
	ErrUnsupportedFormat = errors.New("sigcanvas: unsupported texture format")
)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithDeviceProvider associates the canvas with a GPU device and adopts the
// provider's surface format. The provider should come from
// gogpu.App.GPUContextProvider().
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(c *Canvas) {
		c.provider = p
	}
}

// WithFormat sets the texture format. See SetFormat.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(c *Canvas) {
		c.format = f
	}
}

// Canvas uploads a sigpad.Surface to a GPU texture.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	surface    *sigpad.Surface
	provider   gpucontext.DeviceProvider
	format     gputypes.TextureFormat
	texture    any // Lazy-created texture, *pendingTexture until RenderTo
	oldTexture any // Previous texture awaiting deferred destruction

	uploaded    bool // texture holds the pixels of lastVersion
	lastVersion uint64
	width       int
	height      int

	staging []byte
	closed  bool
}

// New creates a Canvas presenting the given surface. The surface stays
// owned by the caller; closing the canvas does not close it.
func New(s *sigpad.Surface, opts ...Option) (*Canvas, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	c := &Canvas{
		surface: s,
		format:  gputypes.TextureFormatRGBA8Unorm,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider != nil {
		if f := c.provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			c.format = f
		}
	}
	if err := c.SetFormat(c.format); err != nil {
		return nil, err
	}
	return c, nil
}

// Surface returns the presented surface.
func (c *Canvas) Surface() *sigpad.Surface {
	return c.surface
}

// Provider returns the DeviceProvider associated with this canvas, if any.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Format returns the texture format pixels are uploaded in.
func (c *Canvas) Format() gputypes.TextureFormat {
	return c.format
}

// SetFormat selects the texture format. RGBA8 and BGRA8 formats (linear or
// sRGB) are supported; BGRA formats get their red and blue channels
// swapped during upload. Undefined selects RGBA8Unorm. Changing between
// channel orders forces a full upload on the next Flush.
func (c *Canvas) SetFormat(f gputypes.TextureFormat) error {
	if c.closed {
		return ErrCanvasClosed
	}
	switch f {
	case gputypes.TextureFormatUndefined:
		f = gputypes.TextureFormatRGBA8Unorm
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if isBGRA(f) != isBGRA(c.format) {
		c.uploaded = false
	}
	c.format = f
	return nil
}

// Size returns the size of the texture, which follows the surface buffer.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// IsDirty reports whether the surface changed since the last upload.
func (c *Canvas) IsDirty() bool {
	return !c.uploaded || c.surface.Version() != c.lastVersion
}

// Flush uploads the surface pixels to the GPU texture if they changed.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily: Flush returns a placeholder until RenderTo
// has access to a texture creator. A reallocated surface buffer recreates
// the texture; otherwise only the damaged rectangle is uploaded when the
// texture implements gpucontext.TextureRegionUpdater.
//
// Returns an error wrapping sigpad.ErrNoTarget while the surface has no
// buffer.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	c.surface.Flush()
	buf := c.surface.Buffer()
	if buf == nil {
		return nil, fmt.Errorf("sigcanvas: %w", sigpad.ErrNoTarget)
	}

	w, h := buf.Size()
	if w != c.width || h != c.height {
		// The old texture may still be referenced by in-flight GPU command
		// buffers; it is destroyed in RenderTo once a new one exists.
		if c.texture != nil {
			c.retire(c.texture)
			c.texture = nil
			sigpad.Logger().Debug("sigcanvas: texture recreated",
				"from_width", c.width, "from_height", c.height, "to_width", w, "to_height", h)
		}
		c.width, c.height = w, h
		c.uploaded = false
	}

	version := c.surface.Version()
	damage := c.surface.TakeDamage()
	if c.texture != nil && c.uploaded && version == c.lastVersion {
		return c.texture, nil
	}

	if pending, ok := c.texture.(*pendingTexture); ok || c.texture == nil {
		if !ok {
			pending = &pendingTexture{}
			c.texture = pending
		}
		pending.width, pending.height = w, h
		pending.data = c.pack(buf.RGBA(), buf.Bounds())
		c.markUploaded(version)
		return c.texture, nil
	}

	if err := c.upload(buf, damage); err != nil {
		return nil, err
	}
	c.markUploaded(version)
	return c.texture, nil
}

func (c *Canvas) upload(buf *sigpad.Buffer, damage image.Rectangle) error {
	damage = damage.Intersect(buf.Bounds())
	partial := c.uploaded && !damage.Empty() && !damage.Eq(buf.Bounds())

	if ru, ok := c.texture.(gpucontext.TextureRegionUpdater); ok && partial {
		data := c.pack(buf.RGBA(), damage)
		if err := ru.UpdateRegion(damage.Min.X, damage.Min.Y, damage.Dx(), damage.Dy(), data); err != nil {
			return fmt.Errorf("sigcanvas: texture region update failed: %w", err)
		}
		return nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(c.pack(buf.RGBA(), buf.Bounds())); err != nil {
			return fmt.Errorf("sigcanvas: texture update failed: %w", err)
		}
	}
	return nil
}

func (c *Canvas) markUploaded(version uint64) {
	c.lastVersion = version
	c.uploaded = true
}

// pack copies the pixels of r into the staging buffer as densely packed
// rows in the canvas format. The result is valid until the next pack.
func (c *Canvas) pack(img *image.RGBA, r image.Rectangle) []byte {
	rowLen := r.Dx() * 4
	n := rowLen * r.Dy()
	if cap(c.staging) < n {
		c.staging = make([]byte, n)
	}
	out := c.staging[:n]

	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := img.Pix[img.PixOffset(r.Min.X, y):][:rowLen]
		dst := out[(y-r.Min.Y)*rowLen:][:rowLen]
		copy(dst, src)
		if isBGRA(c.format) {
			for i := 0; i < rowLen; i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return out
}

// Texture returns the current GPU texture without flushing.
// Returns nil if texture hasn't been created yet.
func (c *Canvas) Texture() any {
	return c.texture
}

// Close releases the textures. The surface is left untouched.
// Close is idempotent - multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	destroy(c.oldTexture)
	c.oldTexture = nil
	destroy(c.texture)
	c.texture = nil

	c.staging = nil
	c.provider = nil
	return nil
}

// retire defers destruction of tex until a replacement exists.
func (c *Canvas) retire(tex any) {
	if _, ok := tex.(*pendingTexture); ok {
		return
	}
	destroy(c.oldTexture)
	c.oldTexture = tex
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

func isBGRA(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatBGRA8UnormSrgb
}

// pendingTexture is a placeholder for texture creation.
// It holds the data needed to create a real texture when we have
// access to a texture creator (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
