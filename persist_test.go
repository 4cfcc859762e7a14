// FILE: lixenwraith/envconfig/persist_test.go
package envconfig

import (
	"math"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeValue tests value rendering and quoting rules
func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"Nil", nil, ""},
		{"Integer", 123, "123"},
		{"Float", 0.5, "0.5"},
		{"WholeFloat", 8100.0, "8100"},
		{"Zero", 0.0, "0"},
		{"True", true, "true"},
		{"False", false, "false"},
		{"Plain", "0.0.0.0", "0.0.0.0"},
		{"Spaces", "hello world", "hello world"},
		{"DoubleOnly", `say "hi"`, `'say "hi"'`},
		{"SingleOnly", "it's", `"it's"`},
		{"Both", `it's "x"`, `"it's \"x\""`},
		{"BothNoHTMLEscape", `<'&">`, `"<'&\">"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeValue(tt.value))
		})
	}
}

// TestDecodeValue tests reading back encoded values
func TestDecodeValue(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		values := []string{
			"plain",
			"with spaces",
			`say "hi"`,
			"it's",
			`it's a "quoted" word`,
			`both ' and " with \ backslash`,
			`'already single quoted'`,
			`"already double quoted"`,
			`it's\n`,
			`it's \t tab`,
			`it's C:\dir\`,
			`it's \u0041`,
		}
		for _, v := range values {
			assert.Equal(t, v, DecodeValue(EncodeValue(v)), v)
		}
	})

	t.Run("RawAndMalformed", func(t *testing.T) {
		assert.Equal(t, "", DecodeValue(""))
		assert.Equal(t, "x", DecodeValue(" x "))
		assert.Equal(t, `"`, DecodeValue(`"`))
		assert.Equal(t, `C:\dir`, DecodeValue(`"C:\dir"`))
		assert.Equal(t, `a\nb`, DecodeValue(`"a\nb"`))
		assert.Equal(t, "a\n\"b", DecodeValue(`"a\n\"b"`))
	})

	t.Run("SurroundingWhitespaceNotKept", func(t *testing.T) {
		assert.Equal(t, "leading", DecodeValue(EncodeValue(" leading")))
		assert.Equal(t, "trailing", DecodeValue(EncodeValue("trailing ")))
	})

	t.Run("GodotenvReadsEncodedValues", func(t *testing.T) {
		pairs := []Pair{
			{Key: "DOUBLE", Value: `say "hi" now`},
			{Key: "SINGLE", Value: "it's"},
			{Key: "BOTH", Value: `it's a "quoted" word`},
			{Key: "PORT", Value: 8100},
		}

		parsed, err := godotenv.Unmarshal(AppendText(pairs))
		require.NoError(t, err)
		assert.Equal(t, `say "hi" now`, parsed["DOUBLE"])
		assert.Equal(t, "it's", parsed["SINGLE"])
		assert.Equal(t, `it's a "quoted" word`, parsed["BOTH"])
		assert.Equal(t, "8100", parsed["PORT"])
	})
}

// TestMerge tests the round-trip-safe merge of pairs into .env text
func TestMerge(t *testing.T) {
	t.Run("AppendsNewKeys", func(t *testing.T) {
		existing := "HOST=0.0.0.0\nPORT=8100\nVERSION=0\n"
		got := Merge(existing, []Pair{
			{Key: "JWT_SECRET", Value: "1"},
			{Key: "SOME_MORE_VAR", Value: "2"},
		})
		assert.Equal(t, "HOST=0.0.0.0\nPORT=8100\nVERSION=0\nJWT_SECRET=1\nSOME_MORE_VAR=2\n", got)
	})

	t.Run("UpdatesInPlace", func(t *testing.T) {
		existing := "# service\nHOST=0.0.0.0\n\nPORT=8100\nDEBUG=false\n"
		got := Merge(existing, []Pair{{Key: "PORT", Value: 9000}})
		assert.Equal(t, "# service\nHOST=0.0.0.0\n\nPORT=9000\nDEBUG=false\n", got)
	})

	t.Run("LastAssignmentWins", func(t *testing.T) {
		existing := "PORT=1\nHOST=a\nPORT=2\n"
		got := Merge(existing, []Pair{{Key: "PORT", Value: 3}})
		assert.Equal(t, "PORT=1\nHOST=a\nPORT=3\n", got)
	})

	t.Run("KeyPrefixIsNotAMatch", func(t *testing.T) {
		existing := "PORT_ADMIN=1\n#PORT=2\n"
		got := Merge(existing, []Pair{{Key: "PORT", Value: 3}})
		assert.Equal(t, "PORT_ADMIN=1\n#PORT=2\nPORT=3\n", got)
	})

	t.Run("UnchangedInput", func(t *testing.T) {
		existing := "HOST=0.0.0.0\nPORT=8100\n"
		got := Merge(existing, []Pair{{Key: "PORT", Value: 8100}})
		assert.Equal(t, existing, got)
	})

	t.Run("LeadingBlankLineDropped", func(t *testing.T) {
		existing := "\nHOST=0.0.0.0\n"
		got := Merge(existing, nil)
		assert.Equal(t, "HOST=0.0.0.0\n", got)
	})

	t.Run("TrailingNewlineNormalized", func(t *testing.T) {
		assert.Equal(t, "A=1\nB=2\n", Merge("A=1", []Pair{{Key: "B", Value: 2}}))
		assert.Equal(t, "A=1\nB=2\n", Merge("A=1\n\n\n", []Pair{{Key: "B", Value: 2}}))
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		assert.Equal(t, "", Merge("", nil))
		assert.Equal(t, "A=1\n", Merge("", []Pair{{Key: "A", Value: "1"}}))
	})

	t.Run("UnrelatedLinesVerbatim", func(t *testing.T) {
		existing := "  INDENTED=1\nexport OTHER=\"x y\"\nKEY=old\n"
		got := Merge(existing, []Pair{{Key: "KEY", Value: "new"}})
		assert.Equal(t, "  INDENTED=1\nexport OTHER=\"x y\"\nKEY=new\n", got)
	})

	t.Run("QuotedValues", func(t *testing.T) {
		got := Merge("", []Pair{
			{Key: "GREETING", Value: `say "hi"`},
			{Key: "NAME", Value: "O'Brien"},
		})
		assert.Equal(t, "GREETING='say \"hi\"'\nNAME=\"O'Brien\"\n", got)

		parsed, err := godotenv.Unmarshal(got)
		require.NoError(t, err)
		assert.Equal(t, `say "hi"`, parsed["GREETING"])
		assert.Equal(t, "O'Brien", parsed["NAME"])
	})

	t.Run("CRLFInput", func(t *testing.T) {
		got := Merge("A=1\r\nB=2\r\n", []Pair{{Key: "A", Value: 3}})
		assert.Equal(t, "A=3\nB=2\n", got)

		got = Merge("# note\r\nB=2\r\n\r\n", []Pair{{Key: "C", Value: "x"}})
		assert.Equal(t, "# note\nB=2\nC=x\n", got)
	})

	t.Run("NaNIsWrittenLiterally", func(t *testing.T) {
		got := Merge("", []Pair{{Key: "X", Value: math.NaN()}})
		assert.Equal(t, "X=NaN\n", got)
	})
}

// TestAppendText tests the write-only variant
func TestAppendText(t *testing.T) {
	got := AppendText([]Pair{
		{Key: "A", Value: 1},
		{Key: "A", Value: 2},
		{Key: "B", Value: true},
	})
	assert.Equal(t, "A=1\nA=2\nB=true\n", got)
	assert.Empty(t, AppendText(nil))
}
