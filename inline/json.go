package inline

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/mapreel/mapreel/playback"
)

type Article struct {
	Title   string `json:"title" jsonschema:"description=Title of the Wikipedia article."`
	URL     string `json:"url" jsonschema:"description=Address of the article page."`
	Extract string `json:"extract" jsonschema:"description=Plain text introduction of the article."`
}

type Frame struct {
	Index int    `json:"index" jsonschema:"description=Frame index, starting from 1."`
	Year  int    `json:"year" jsonschema:"description=Election year shown by the frame."`
	Label string `json:"label" jsonschema:"description=Display label of the frame."`
	URL   string `json:"url" jsonschema:"description=Rendered frame location. Either a URL or a local path."`
	// Article is only set with the overlay enabled.
	Article *Article `json:"article,omitempty"`
	Images  []string `json:"images,omitempty" jsonschema:"description=Thumbnail URLs of the article images."`
	Errors  []string `json:"errors,omitempty" jsonschema:"description=Overlay requests that failed."`
}

// Output is one line of json output.
type Output struct {
	Range playback.Range `json:"range"`
	Frame *Frame         `json:"frame"`
}

func writeJson(out io.Writer, rng playback.Range, frame *Frame) error {
	return json.NewEncoder(out).Encode(&Output{Range: rng, Frame: frame})
}

// Schema returns the JSON schema of an output line.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		switch t.Name() {
		case "Range":
			return "playback.Range"
		}
		return t.Name()
	}

	return reflector.Reflect(&Output{})
}
