package ingest

import (
	"github.com/yanyiwu/gojieba"
)

// JiebaOptions points the segmenter at custom dictionaries. Empty fields
// fall back to the dictionaries bundled with gojieba.
type JiebaOptions struct {
	DictPath     string
	HMMPath      string
	UserDictPath string
	IDFPath      string
	StopWordPath string
}

func (o JiebaOptions) paths() []string {
	fields := []string{o.DictPath, o.HMMPath, o.UserDictPath, o.IDFPath, o.StopWordPath}
	last := -1
	for i, f := range fields {
		if f != "" {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	// gojieba takes the paths positionally; fill gaps with the defaults.
	defaults := []string{gojieba.DICT_PATH, gojieba.HMM_PATH, gojieba.USER_DICT_PATH, gojieba.IDF_PATH, gojieba.STOP_WORDS_PATH}
	out := make([]string, last+1)
	for i := 0; i <= last; i++ {
		out[i] = fields[i]
		if out[i] == "" {
			out[i] = defaults[i]
		}
	}
	return out
}

// JiebaTokenizer segments Chinese text with jieba in precise mode with
// HMM enabled for unknown words. Punctuation and whitespace come through as
// their own tokens.
type JiebaTokenizer struct {
	handle *gojieba.Jieba
}

// NewJiebaTokenizer loads the jieba dictionaries. Call Close when done.
func NewJiebaTokenizer(opts JiebaOptions) *JiebaTokenizer {
	return &JiebaTokenizer{handle: gojieba.NewJieba(opts.paths()...)}
}

// Tokenize segments text into words.
func (t *JiebaTokenizer) Tokenize(text string) []string {
	return t.handle.Cut(text, true)
}

// Close frees the native segmenter.
func (t *JiebaTokenizer) Close() error {
	if t.handle != nil {
		t.handle.Free()
		t.handle = nil
	}
	return nil
}
