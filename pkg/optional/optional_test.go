package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit/campus/pkg/utils/json"
)

func TestZeroValueIsAbsent(t *testing.T) {
	var o Optional[string]
	assert.False(t, o.Present())

	_, ok := o.Get()
	assert.False(t, ok)
	assert.Equal(t, "fallback", o.OrElse("fallback"))
	assert.Panics(t, func() { o.MustGet() })
}

func TestOfAndSet(t *testing.T) {
	o := Of(false)
	// An explicit zero value is still present; presence is about the key,
	// not the value.
	assert.True(t, o.Present())
	assert.False(t, o.MustGet())

	var p Optional[int]
	p.Set(0)
	assert.True(t, p.Present())
	assert.Equal(t, 0, p.OrElse(9))
}

func TestClear(t *testing.T) {
	o := Of("hello")
	o.Clear()
	assert.False(t, o.Present())
	assert.Equal(t, "", o.OrElse(""))
}

func TestUnmarshalMarksPresence(t *testing.T) {
	type patch struct {
		Title     Optional[string] `json:"title"`
		Published Optional[bool]   `json:"published"`
		Sort      Optional[int]    `json:"sort"`
	}

	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","published":false}`), &p))

	// Sent keys are present even with zero values; omitted keys are not.
	assert.True(t, p.Title.Present())
	assert.Equal(t, "", p.Title.MustGet())
	assert.True(t, p.Published.Present())
	assert.False(t, p.Published.MustGet())
	assert.False(t, p.Sort.Present())
}

func TestMarshal(t *testing.T) {
	data, err := json.Marshal(Of("hi"))
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, string(data))

	data, err = json.Marshal(None[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
