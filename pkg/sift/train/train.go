package train

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/sift/pkg/sift/corpus"
	"github.com/cognicore/sift/pkg/sift/counter"
	"github.com/cognicore/sift/pkg/sift/model"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

// Report summarizes one training run for observability.
type Report struct {
	RunID              string
	TotalSamples       uint32
	SpamSamples        uint32
	HamSamples         uint32
	TotalTokens        uint32
	UniqueTokens       uint32
	AvgTokensPerSample float64
}

// Trainer accumulates token counters from labeled samples and rebuilds the
// compact model from scratch. Single-threaded, single pass; it never runs
// concurrently with serving.
type Trainer struct {
	tokenizer *tokenize.Tokenizer
	entropy   *ulid.MonotonicEntropy
}

// New creates a trainer using the given tokenizer.
func New(tok *tokenize.Tokenizer) *Trainer {
	return &Trainer{
		tokenizer: tok,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// Run consumes src to exhaustion and builds a fresh model. When prior is
// non-nil its entries seed the accumulator first, so counts add up across
// runs; the serialized structure is still rebuilt from scratch.
//
// Samples labeled spam or ham increment the matching class count for each
// of their tokens. Samples with any other label still add their tokens to
// the key set with zero weight, making them known, inert vocabulary.
func (t *Trainer) Run(src corpus.Source, prior *model.Model) (*model.Model, Report, error) {
	acc := make(map[string]counter.Counter, 256)
	report := Report{RunID: ulid.MustNew(ulid.Timestamp(time.Now()), t.entropy).String()}

	if prior != nil {
		it := prior.Iterator()
		for it.Next() {
			c := it.Count()
			acc[it.Token()] = c
			report.TotalTokens += c.Total()
		}
		if err := it.Err(); err != nil {
			return nil, report, err
		}
	}

	for {
		sample, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, err
		}

		isSpam := sample.Label == corpus.LabelSpam
		isHam := sample.Label == corpus.LabelHam
		if isSpam {
			report.SpamSamples++
		} else if isHam {
			report.HamSamples++
		}
		report.TotalSamples++

		tokens := t.tokenizer.Tokenize(sample.Text)
		report.TotalTokens += uint32(len(tokens))

		for _, tok := range tokens {
			c := acc[tok]
			if isSpam {
				c.Spam++
			} else if isHam {
				c.Ham++
			}
			acc[tok] = c
		}
	}

	report.UniqueTokens = uint32(len(acc))
	if report.TotalSamples > 0 {
		report.AvgTokensPerSample = float64(report.TotalTokens) / float64(report.TotalSamples)
	}

	m, err := model.Build(model.SortEntries(acc))
	if err != nil {
		return nil, report, err
	}
	return m, report, nil
}
