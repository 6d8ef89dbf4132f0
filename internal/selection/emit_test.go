package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitIgnoreList_Empty(t *testing.T) {
	assert.Equal(t, "ignore=[]", EmitIgnoreList(nil))
	assert.Equal(t, "ignore=[]", EmitIgnoreList([]string{}))
}

func TestEmitIgnoreList_Items(t *testing.T) {
	got := EmitIgnoreList([]string{"lm_head", `re:model\.layers\.\d+\.mlp\.down_proj`})

	want := "ignore=[\n" +
		"    \"lm_head\",\n" +
		"    \"re:model\\.layers\\.\\d+\\.mlp\\.down_proj\"\n" +
		"]"
	assert.Equal(t, want, got)
}

func TestEmitIgnoreList_SingleItemNoTrailingComma(t *testing.T) {
	got := EmitIgnoreList([]string{"model.norm"})
	assert.Equal(t, "ignore=[\n    \"model.norm\"\n]", got)
}

func TestEmitIgnoreList_ResolvesBack(t *testing.T) {
	universe := []string{"model.norm", "lm_head"}
	text := EmitIgnoreList([]string{"model.norm", "lm_head"})
	assert.Equal(t, universe, Resolve(text, universe))
}
