package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactYAML(t *testing.T) {
	doc := "cards:\n  - oid: a\n    score: 1\n  - oid: b\n    score: 2\ntitle: t\n"
	assert.Equal(t, "cards:\n- oid: a\n  score: 1\n- oid: b\n  score: 2\ntitle: t\n", CompactYAML(doc))
}

func TestToBeautifulYAML(t *testing.T) {
	type item struct {
		Name string `yaml:"name"`
	}
	type doc struct {
		Title string  `yaml:"title"`
		Items []*item `yaml:"items"`
	}

	actual, err := ToBeautifulYAML(doc{
		Title: "Capitals",
		Items: []*item{{Name: "France"}, {Name: "Italy"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "title: Capitals\nitems:\n- name: France\n- name: Italy\n", actual)
}
