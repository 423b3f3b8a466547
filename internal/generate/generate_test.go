package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAspectRatio(t *testing.T) {
	for _, ratio := range AspectRatios {
		assert.True(t, ValidAspectRatio(ratio), ratio)
	}
	assert.False(t, ValidAspectRatio("2:1"))
	assert.False(t, ValidAspectRatio(""))
	assert.False(t, ValidAspectRatio("16x9"))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{Prompt: "夜樱与星空", AspectRatio: "16:9"})
	assert.Contains(t, p, "夜樱与星空")
	assert.Contains(t, p, "16:9")
	assert.Contains(t, p, "anime style")
}

func TestErrorMessages(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		err := newError("", errors.New("rpc: unavailable"))
		assert.Equal(t, DefaultFailureMessage, err.Error())
		assert.EqualError(t, errors.Unwrap(err), "rpc: unavailable")
	})

	t.Run("custom", func(t *testing.T) {
		err := newError("生成主题不能为空", nil)
		assert.Equal(t, "生成主题不能为空", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}

// stubGenerator stands in for the Gemini client in callers' tests.
type stubGenerator struct {
	url string
	err error
}

func (s stubGenerator) Generate(_ context.Context, _ Request) (string, error) {
	return s.url, s.err
}

func TestGeneratorContract(t *testing.T) {
	var g Generator = stubGenerator{url: "data:image/png;base64,aGk="}
	url, err := g.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "1:1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/"))

	g = stubGenerator{err: newError("", nil)}
	_, err = g.Generate(context.Background(), Request{Prompt: "p", AspectRatio: "1:1"})
	var genErr *Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, DefaultFailureMessage, genErr.Error())
}
