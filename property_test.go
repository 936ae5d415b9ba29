package docfmt_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/bjaus/docfmt"
)

// trickyStrings are scalars a careless YAML writer would leave unquoted.
var trickyStrings = []string{
	"", " ", "true", "False", "yes", "NO", "on", "null", "Null", "~",
	"123", "-7", "1.5", "1e3", "0x1F", "0o17", ".inf", "-.Inf", ".NaN",
	"a: b", "a:", "# comment", "x #y", "- item", "? key", "[list]", "{map}",
	"*alias", "&anchor", "!tag", "|", ">", "%directive", "@at", "`tick",
	"'single'", `"double"`, " lead", "trail ", "multi\nline", "tab\tin",
	"plain text", "a:b", "C#", "ünïcödé", "snow ☃",
}

func jsonNumber() *rapid.Generator[docfmt.Value] {
	return rapid.OneOf(
		rapid.Map(rapid.Int64(), func(n int64) docfmt.Value {
			return docfmt.Number(strconv.FormatInt(n, 10))
		}),
		rapid.Map(rapid.SampledFrom([]string{"0.5", "-1.25e-3", "6.02E23", "1e0"}), docfmt.Number),
	)
}

func jsonScalar() *rapid.Generator[docfmt.Value] {
	return rapid.OneOf(
		rapid.Just(docfmt.Null()),
		rapid.Map(rapid.Bool(), docfmt.Bool),
		jsonNumber(),
		rapid.Map(rapid.String(), docfmt.String),
	)
}

func jsonValue(depth int) *rapid.Generator[docfmt.Value] {
	if depth == 0 {
		return jsonScalar()
	}
	child := jsonValue(depth - 1)
	return rapid.OneOf(
		jsonScalar(),
		rapid.Map(rapid.SliceOfN(child, 0, 4), func(items []docfmt.Value) docfmt.Value {
			return docfmt.List(items...)
		}),
		rapid.Custom(func(t *rapid.T) docfmt.Value {
			keys := rapid.SliceOfNDistinct(rapid.String(), 0, 4, rapid.ID[string]).Draw(t, "keys")
			m := docfmt.NewMap()
			for _, k := range keys {
				m.Set(k, child.Draw(t, "value"))
			}
			return docfmt.Mapping(m)
		}),
	)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		v := jsonValue(3).Draw(t, "value")
		opts := docfmt.Options{
			Indent:   rapid.IntRange(0, 8).Draw(t, "indent"),
			SortKeys: rapid.Bool().Draw(t, "sortKeys"),
		}
		out, err := docfmt.Marshal(docfmt.JSON, v, opts)
		require.NoError(t, err)

		got, err := docfmt.Parse(docfmt.JSON, string(out))
		require.NoError(t, err)
		want := v
		if opts.SortKeys {
			want = docfmt.SortKeys(v)
		}
		assert.True(t, want.Equal(got), "round trip of %s", out)
	})
}

func TestMinifyJSONProperties(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		v := jsonValue(3).Draw(t, "value")
		compact, err := v.MarshalJSON()
		require.NoError(t, err)

		pretty, err := docfmt.FormatJSON(string(compact), docfmt.DefaultOptions())
		require.NoError(t, err)
		minified, err := docfmt.MinifyJSON(pretty)
		require.NoError(t, err)
		assert.Equal(t, string(compact), minified)

		again, err := docfmt.MinifyJSON(minified)
		require.NoError(t, err)
		assert.Equal(t, minified, again)
	})
}

func yamlString() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.SampledFrom(trickyStrings),
		rapid.StringMatching(`[ -~]{0,10}`),
	)
}

func yamlKey() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`),
		rapid.SampledFrom([]string{"", "true", "a: b", "# c", "- d", "x y", "k:"}),
	)
}

func yamlLeaf() *rapid.Generator[docfmt.Value] {
	return rapid.OneOf(
		rapid.Map(yamlString(), docfmt.String),
		rapid.Just(docfmt.Null()),
		rapid.Just(docfmt.Mapping(nil)),
		rapid.Just(docfmt.List()),
	)
}

// yamlTree draws values inside the YAML subset: string and null leaves,
// and no list directly inside another list.
func yamlTree(depth int) *rapid.Generator[docfmt.Value] {
	if depth == 0 {
		return yamlLeaf()
	}
	return rapid.OneOf(yamlLeaf(), yamlMapping(depth), yamlList(depth))
}

func yamlMapping(depth int) *rapid.Generator[docfmt.Value] {
	return rapid.Custom(func(t *rapid.T) docfmt.Value {
		keys := rapid.SliceOfNDistinct(yamlKey(), 1, 3, rapid.ID[string]).Draw(t, "keys")
		m := docfmt.NewMap()
		for _, k := range keys {
			m.Set(k, yamlTree(depth-1).Draw(t, "value"))
		}
		return docfmt.Mapping(m)
	})
}

func yamlList(depth int) *rapid.Generator[docfmt.Value] {
	item := rapid.OneOf(yamlLeaf(), yamlMapping(depth))
	return rapid.Map(rapid.SliceOfN(item, 1, 3), func(items []docfmt.Value) docfmt.Value {
		return docfmt.List(items...)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.OneOf(yamlMapping(3), yamlList(3)).Draw(t, "value")
		out, err := docfmt.Marshal(docfmt.YAML, v, docfmt.Options{})
		require.NoError(t, err)

		got, err := docfmt.Parse(docfmt.YAML, string(out))
		require.NoError(t, err, "parsing:\n%s", out)
		assert.True(t, v.Equal(got), "round trip of:\n%s", out)
	})
}

// TestYAMLQuotingAgainstFullParser checks written scalars with a complete
// YAML implementation, which resolves plain booleans, numbers and nulls.
func TestYAMLQuotingAgainstFullParser(t *testing.T) {
	t.Parallel()
	m := docfmt.NewMap()
	for i, s := range trickyStrings {
		m.Set(s, docfmt.String(strconv.Itoa(i)))
		m.Set("value"+strconv.Itoa(i), docfmt.String(s))
	}
	out, err := docfmt.Marshal(docfmt.YAML, docfmt.Mapping(m), docfmt.Options{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	for i, s := range trickyStrings {
		assert.Equal(t, strconv.Itoa(i), decoded[s], "key %q", s)
		assert.Equal(t, s, decoded["value"+strconv.Itoa(i)], "value %q", s)
	}

	got, err := docfmt.Parse(docfmt.YAML, string(out))
	require.NoError(t, err)
	assert.True(t, docfmt.Mapping(m).Equal(got))
}
