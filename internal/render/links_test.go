package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkBuilder_User(t *testing.T) {
	var b LinkBuilder
	assert.Equal(t, "<https://www.synapse.org/Profile:123|alice>", b.User("123", "alice"))
}

func TestLinkBuilder_Entities(t *testing.T) {
	var b LinkBuilder
	assert.Equal(t, "<https://www.synapse.org/Synapse:syn42|Atlas>", b.Project("42", "Atlas"))
	assert.Equal(t, "<https://www.synapse.org/Synapse:syn43|raw>", b.Folder("43", "raw"))
	assert.Equal(t, "<https://www.synapse.org/Synapse:syn44|a.csv>", b.File("44", "a.csv"))
}

func TestLinkBuilder_SynPrefixNotDoubled(t *testing.T) {
	var b LinkBuilder
	assert.Equal(t, "<https://www.synapse.org/Synapse:syn42|Atlas>", b.Project("syn42", "Atlas"))
}

func TestLinkBuilder_CustomBase(t *testing.T) {
	b := LinkBuilder{BaseURL: "https://staging.synapse.org/"}
	assert.Equal(t, "<https://staging.synapse.org/Profile:1|bob>", b.User("1", "bob"))
}
