package jsonfile

import (
	_ "embed"

	"github.com/asjames18/scripture-engine/core/corpus"
)

// sampleJSON is a small public-domain (KJV and Charles) excerpt used as
// the zero-config default corpus.
//
//go:embed sample.json
var sampleJSON []byte

// Sample returns the embedded sampler corpus source.
func Sample() corpus.Source {
	return FromBytes("embedded sample", sampleJSON)
}
