package classify

import (
	"math"

	"github.com/cognicore/sift/pkg/sift/counter"
	"github.com/cognicore/sift/pkg/sift/model"
	"github.com/cognicore/sift/pkg/sift/tokenize"
)

// Defaults for the tunable parameters.
const (
	DefaultAlpha         = 1.0
	DefaultSpamThreshold = 0.80
)

// Classifier scores text against an immutable token model using naive
// bayes with Laplace smoothing. The model and tokenizer are shared
// read-only; the classifier itself is cheap state around them and holds
// the two tunable parameters.
type Classifier struct {
	model     *model.Model
	stats     model.Stats
	tokenizer *tokenize.Tokenizer

	alpha         float64
	spamThreshold float64
}

// Result is the detailed verdict for one input.
type Result struct {
	SpamProbability float64
	HamProbability  float64
	IsSpam          bool
	Confidence      float64
}

// New creates a classifier over the given model and tokenizer with the
// default parameters.
func New(m *model.Model, tok *tokenize.Tokenizer) *Classifier {
	return &Classifier{
		model:         m,
		stats:         m.Stats(),
		tokenizer:     tok,
		alpha:         DefaultAlpha,
		spamThreshold: DefaultSpamThreshold,
	}
}

// SetAlpha sets the Laplace smoothing constant. No range validation; the
// value takes effect on subsequent calls only.
func (c *Classifier) SetAlpha(alpha float64) {
	c.alpha = alpha
}

// Alpha returns the current smoothing constant.
func (c *Classifier) Alpha() float64 {
	return c.alpha
}

// SetSpamThreshold sets the probability at or above which input counts as
// spam. No range validation; takes effect on subsequent calls only.
func (c *Classifier) SetSpamThreshold(threshold float64) {
	c.spamThreshold = threshold
}

// SpamThreshold returns the current spam threshold.
func (c *Classifier) SpamThreshold() float64 {
	return c.spamThreshold
}

// likelihoods returns the smoothed P(token|spam) and P(token|ham).
func (c *Classifier) likelihoods(cnt counter.Counter) (float64, float64) {
	smoothedVocab := c.alpha * float64(c.stats.UniqueTokens)
	pSpam := (float64(cnt.Spam) + c.alpha) / (float64(c.stats.TotalSpam) + smoothedVocab)
	pHam := (float64(cnt.Ham) + c.alpha) / (float64(c.stats.TotalHam) + smoothedVocab)
	return pSpam, pHam
}

// Classify returns the probability in [0, 1] that text is spam. Tokens are
// treated as independent given the class; repeated tokens contribute one
// factor per occurrence. Input with no tokens scores the prior.
func (c *Classifier) Classify(text string) float64 {
	tokens := c.tokenizer.Tokenize(text)
	prior := c.stats.PriorSpam()
	if len(tokens) == 0 {
		return prior
	}

	logSpam := math.Log(prior)
	logHam := math.Log(1 - prior)

	for _, tok := range tokens {
		cnt, _ := c.model.Lookup(tok) // absent tokens count as zero
		pSpam, pHam := c.likelihoods(cnt)
		logSpam += math.Log(pSpam)
		logHam += math.Log(pHam)
	}

	// Normalize in the log domain. Subtracting the larger sum before
	// exponentiating keeps both exponentials representable for inputs of
	// any length, where exponentiating the raw sums would underflow.
	maxLog := math.Max(logSpam, logHam)
	denom := maxLog + math.Log(math.Exp(logSpam-maxLog)+math.Exp(logHam-maxLog))
	result := math.Exp(logSpam - denom)

	// Last-resort safety net, e.g. an untrained model makes every
	// likelihood denominator zero.
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return prior
	}
	return result
}

// ClassifyDetailed classifies text and derives the threshold verdict and
// confidence from the spam probability.
func (c *Classifier) ClassifyDetailed(text string) Result {
	p := c.Classify(text)
	isSpam := p >= c.spamThreshold
	confidence := p
	if !isSpam {
		confidence = 1 - p
	}
	return Result{
		SpamProbability: p,
		HamProbability:  1 - p,
		IsSpam:          isSpam,
		Confidence:      confidence,
	}
}
