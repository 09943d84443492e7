package render

import (
	"io"

	"cellmachine/internal/core"
)

const (
	FormatGIF = "gif"
	FormatAVI = "avi"
)

func init() {
	core.Register(FormatGIF, core.Format{
		Extension: "gif",
		MediaType: "image/gif",
		New: func(w io.Writer, cfg core.SinkConfig) (core.FrameSink, error) {
			s, err := NewGIFWriter(w, cfg)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	})
	core.Register(FormatAVI, core.Format{
		Extension: "avi",
		MediaType: "video/x-msvideo",
		New: func(w io.Writer, cfg core.SinkConfig) (core.FrameSink, error) {
			s, err := NewAVIWriter(w, cfg)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	})
}
