package commands

import (
	"github.com/rs/zerolog"

	"pyxidust/internal/ports"
)

// Observable is implemented by every command
type Observable interface {
	SetLogger(l zerolog.Logger)
	SetRecorder(r ports.Recorder)
}

// Observe attaches a logger and recorder to cmd and returns it for chaining
func Observe[T Observable](cmd T, l zerolog.Logger, r ports.Recorder) T {
	cmd.SetLogger(l)
	cmd.SetRecorder(r)
	return cmd
}

// observer holds the logger and recorder of a command. Both are optional.
type observer struct {
	log *zerolog.Logger
	rec ports.Recorder
}

func (o *observer) SetLogger(l zerolog.Logger) {
	o.log = &l
}

func (o *observer) SetRecorder(r ports.Recorder) {
	o.rec = r
}

func (o *observer) logger() *zerolog.Logger {
	if o.log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.log
}

func (o *observer) recorder() ports.Recorder {
	if o.rec == nil {
		return nopRecorder{}
	}
	return o.rec
}

type nopRecorder struct{}

func (nopRecorder) RecordMinted(int)            {}
func (nopRecorder) RecordProject()              {}
func (nopRecorder) RecordArtifacts(string, int) {}
func (nopRecorder) RecordCrawl(int)             {}
func (nopRecorder) RecordJoin(string, int, int) {}
