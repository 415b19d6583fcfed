package routing

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Direct(t *testing.T) {
	rule, err := Parse([]byte(`"+7 (800) 555 35 35"`))
	require.NoError(t, err)
	assert.Equal(t, "+7 (800) 555 35 35", rule.Resolve("cpc"))
	assert.Equal(t, "+7 (800) 555 35 35", rule.Resolve(""))
}

func TestParse_ByMedium(t *testing.T) {
	rule, err := Parse([]byte(`{"cpc":"+7 (800) 111 11 11","Email":"+7 (800) 222 22 22","default":"+7 (800) 555 35 35"}`))
	require.NoError(t, err)

	assert.Equal(t, "+7 (800) 111 11 11", rule.Resolve("cpc"))
	assert.Equal(t, "+7 (800) 111 11 11", rule.Resolve(" CPC "))
	assert.Equal(t, "+7 (800) 222 22 22", rule.Resolve("email"))
	assert.Equal(t, "+7 (800) 555 35 35", rule.Resolve("social"))
	assert.Equal(t, "+7 (800) 555 35 35", rule.Resolve(""))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"cpc":"+7 (800) 111 11 11"}`))
	assert.True(t, errors.Is(err, ErrMissingDefault))

	_, err = Parse([]byte(`{"default":""}`))
	assert.True(t, errors.Is(err, ErrMissingDefault))

	_, err = Parse([]byte(`""`))
	assert.True(t, errors.Is(err, ErrEmptyPhone))

	_, err = Parse([]byte(`{"cpc":"","default":"1"}`))
	assert.True(t, errors.Is(err, ErrEmptyPhone))

	_, err = Parse([]byte(`42`))
	assert.Error(t, err)

	_, err = Parse(nil)
	assert.Error(t, err)
}

func TestRule_UnmarshalJSON(t *testing.T) {
	var cfg struct {
		Phone Rule `json:"phone"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"phone":{"cpc":"1","default":"2"}}`), &cfg))
	assert.Equal(t, "1", cfg.Phone.Resolve("cpc"))
	assert.Equal(t, "2", cfg.Phone.Resolve("organic"))
}

func TestParseSetting(t *testing.T) {
	rule, err := ParseSetting("")
	require.NoError(t, err)
	assert.True(t, rule.IsZero())
	assert.Equal(t, "", rule.Resolve("cpc"))

	rule, err = ParseSetting("+7 (800) 555 35 35")
	require.NoError(t, err)
	assert.Equal(t, "+7 (800) 555 35 35", rule.Resolve("cpc"))

	rule, err = ParseSetting(`{"cpc":"1","default":"2"}`)
	require.NoError(t, err)
	assert.Equal(t, "1", rule.Resolve("cpc"))
}

func TestMediumFromQuery(t *testing.T) {
	q, err := url.ParseQuery("utm_source=yandex&utm_medium=CPC")
	require.NoError(t, err)
	assert.Equal(t, "cpc", MediumFromQuery(q))
	assert.Equal(t, "", MediumFromQuery(url.Values{}))
}
