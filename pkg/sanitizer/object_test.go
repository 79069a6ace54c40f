package sanitizer_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/value"
)

const objectFixture = `{
	"name": "<b>Acme</b>",
	"count": 3,
	"ok": true,
	"missing": null,
	"nested": {"bio": "<i>x</i>"},
	"tags": ["<b>t</b>", {"label": "<u>l</u>"}]
}`

func stringAt(t *testing.T, v value.Value, keys ...string) string {
	t.Helper()
	cur := v
	for _, k := range keys {
		next, ok := cur.Get(k)
		require.True(t, ok, "missing key %q", k)
		cur = next
	}
	s, ok := cur.Str()
	require.True(t, ok)
	return s
}

func TestSanitizeObject(t *testing.T) {
	t.Parallel()

	in := value.MustParse(objectFixture)

	t.Run("shallow", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeObject(in, sanitizer.Options{StripAllHTML: true})

		assert.Equal(t, "Acme", stringAt(t, out, "name"))
		assert.Equal(t, "<i>x</i>", stringAt(t, out, "nested", "bio"))

		count, _ := out.Get("count")
		n, ok := count.Num()
		require.True(t, ok)
		assert.Equal(t, float64(3), n)

		okVal, _ := out.Get("ok")
		b, isBool := okVal.Boolean()
		require.True(t, isBool)
		assert.True(t, b)

		missing, _ := out.Get("missing")
		assert.True(t, missing.IsNull())

		tags, _ := out.Get("tags")
		first, _ := tags.Items()[0].Str()
		assert.Equal(t, "<b>t</b>", first, "arrays are not walked by default")
	})

	t.Run("deep", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeObject(in, sanitizer.Options{StripAllHTML: true, Deep: true})

		assert.Equal(t, "x", stringAt(t, out, "nested", "bio"))
		tags, _ := out.Get("tags")
		first, _ := tags.Items()[0].Str()
		assert.Equal(t, "<b>t</b>", first)
	})

	t.Run("deep with arrays", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeObject(in, sanitizer.Options{StripAllHTML: true, Deep: true, WalkArrays: true})

		tags, _ := out.Get("tags")
		first, _ := tags.Items()[0].Str()
		assert.Equal(t, "t", first)
		assert.Equal(t, "l", stringAt(t, tags.Items()[1], "label"))
	})

	t.Run("permissive transform by default", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeObject(
			value.Object(value.Field("bio", value.String(`<b>hi</b><script>x()</script>`))),
			sanitizer.Options{},
		)
		assert.Equal(t, "<b>hi</b>", stringAt(t, out, "bio"))
	})

	t.Run("custom transform", func(t *testing.T) {
		t.Parallel()
		out := sanitizer.SanitizeObject(in, sanitizer.Options{Transform: strings.ToUpper})
		assert.Equal(t, "<B>ACME</B>", stringAt(t, out, "name"))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		t.Parallel()
		_ = sanitizer.SanitizeObject(in, sanitizer.Options{StripAllHTML: true, Deep: true, WalkArrays: true})
		assert.Equal(t, "<b>Acme</b>", stringAt(t, in, "name"))
	})

	t.Run("top level scalars and arrays", func(t *testing.T) {
		t.Parallel()
		s, _ := sanitizer.SanitizeObject(value.String("<b>x</b>"), sanitizer.Options{StripAllHTML: true}).Str()
		assert.Equal(t, "x", s)

		arr := value.Array(value.String("<b>x</b>"))
		out := sanitizer.SanitizeObject(arr, sanitizer.Options{StripAllHTML: true})
		first, _ := out.Items()[0].Str()
		assert.Equal(t, "<b>x</b>", first)

		n := sanitizer.SanitizeObject(value.Number(7), sanitizer.Options{})
		assert.Equal(t, value.KindNumber, n.Kind())
	})
}

func TestDetectors(t *testing.T) {
	t.Parallel()

	assert.True(t, sanitizer.DetectSQLInjection("' OR '1'='1"))
	assert.False(t, sanitizer.DetectSQLInjection("email@example.com"))
	assert.True(t, sanitizer.DetectXSS("<script>alert(1)</script>"))
	assert.False(t, sanitizer.DetectXSS("<p>hello</p>"))
}

func TestIsSafeInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sanitizer.SafeResult{Safe: true}, sanitizer.IsSafeInput("just text"))
	assert.Equal(t, sanitizer.SafeResult{Reason: sanitizer.ReasonXSS}, sanitizer.IsSafeInput("<iframe src=x>"))
	assert.Equal(t, sanitizer.SafeResult{Reason: sanitizer.ReasonSQLInjection}, sanitizer.IsSafeInput("1 UNION SELECT 1"))

	both := sanitizer.IsSafeInput(`' OR '1'='1 <script>x</script>`)
	assert.False(t, both.Safe)
	assert.Equal(t, "SQL injection detected", both.Reason)
}

func TestSanitizeMap(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name":   "<b>Acme</b>",
		"price":  12.5,
		"nested": map[string]any{"bio": "<i>x</i>"},
	}
	out := sanitizer.SanitizeMap(in, sanitizer.Options{StripAllHTML: true, Deep: true})

	assert.Equal(t, "Acme", out["name"])
	assert.Equal(t, 12.5, out["price"])
	assert.Equal(t, map[string]any{"bio": "x"}, out["nested"])
	assert.Equal(t, "<b>Acme</b>", in["name"])

	assert.Nil(t, sanitizer.SanitizeMap(nil, sanitizer.Options{}))

	unsupported := map[string]any{"fn": func() {}}
	_, kept := sanitizer.SanitizeMap(unsupported, sanitizer.Options{})["fn"]
	assert.True(t, kept, "unsupported maps are returned unchanged")
}

func TestSanitizeObjectWideObject(t *testing.T) {
	t.Parallel()

	const n = 100_000
	members := make([]value.Member, n)
	for i := range members {
		members[i] = value.Field("k"+strconv.Itoa(i), value.String("v"))
	}

	out := sanitizer.SanitizeObject(value.Object(members...), sanitizer.Options{Transform: strings.ToUpper})

	require.Equal(t, n, out.Len())
	last := out.Members()[n-1]
	assert.Equal(t, "k99999", last.Key)
	s, _ := last.Value.Str()
	assert.Equal(t, "V", s)
}
