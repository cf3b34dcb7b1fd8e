package convert

import (
	"reflect"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braincorp/auto-argparser/typespec"
)

func mustFromGo(t *testing.T, sample any) *typespec.Type {
	t.Helper()
	tp, err := typespec.FromGo(reflect.TypeOf(sample))
	require.NoError(t, err)
	return tp
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"yes", "TRUE", "t", "Y", "1"} {
		v, err := ParseBool(token)
		require.NoError(t, err, token)
		assert.True(t, v, token)
	}
	for _, token := range []string{"no", "False", "f", "N", "0"} {
		v, err := ParseBool(token)
		require.NoError(t, err, token)
		assert.False(t, v, token)
	}

	_, err := ParseBool("2")
	require.Error(t, err)
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "2", convErr.Value)
}

func TestValue_Primitives(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		token    string
		spec     *typespec.Type
		expected any
	}{
		{name: "int", token: "54", spec: typespec.Int, expected: 54},
		{name: "float", token: "3.14", spec: typespec.Float, expected: 3.14},
		{name: "float from int literal", token: "5", spec: typespec.Float, expected: 5.0},
		{name: "string", token: "hello", spec: typespec.String, expected: "hello"},
		{name: "bool", token: "yes", spec: typespec.Bool, expected: true},
		{name: "none literal", token: "None", spec: typespec.None, expected: nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Value(tc.token, tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestValue_Time(t *testing.T) {
	t.Parallel()

	got, err := Value("2019-07-02 14:30:00", typespec.Time)
	require.NoError(t, err)
	when, ok := got.(interface{ Year() int })
	require.True(t, ok)
	assert.Equal(t, 2019, when.Year())

	_, err = Value("not a date", typespec.Time)
	require.Error(t, err)
}

func TestValue_Sequences(t *testing.T) {
	t.Parallel()

	t.Run("typed slice round-trips", func(t *testing.T) {
		t.Parallel()
		got, err := Value("54,32,23", mustFromGo(t, []int(nil)))
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([]int{54, 32, 23}, got))
	})

	t.Run("untyped sequence stays generic", func(t *testing.T) {
		t.Parallel()
		got, err := Value("54,32,23", typespec.SequenceOf(typespec.Int))
		require.NoError(t, err)
		assert.Equal(t, []any{54, 32, 23}, got)
	})

	t.Run("nested lists via brackets", func(t *testing.T) {
		t.Parallel()
		got, err := Value("[1,2],[3,4]", mustFromGo(t, [][]int(nil)))
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff([][]int{{1, 2}, {3, 4}}, got))
	})

	t.Run("element failure surfaces", func(t *testing.T) {
		t.Parallel()
		_, err := Value("1,two,3", mustFromGo(t, []int(nil)))
		require.Error(t, err)
	})

	t.Run("set collects into membership map", func(t *testing.T) {
		t.Parallel()
		got, err := Value("a,b,a", typespec.SetOf(typespec.String))
		require.NoError(t, err)
		assert.Equal(t, map[any]struct{}{"a": {}, "b": {}}, got)
	})
}

func TestValue_Tuples(t *testing.T) {
	t.Parallel()

	t.Run("typed array", func(t *testing.T) {
		t.Parallel()
		got, err := Value("1,2,3", mustFromGo(t, [3]int{}))
		require.NoError(t, err)
		assert.Equal(t, [3]int{1, 2, 3}, got)
	})

	t.Run("mixed member types", func(t *testing.T) {
		t.Parallel()
		got, err := Value("7,seven", typespec.TupleOf(typespec.Int, typespec.String))
		require.NoError(t, err)
		assert.Equal(t, []any{7, "seven"}, got)
	})

	t.Run("arity mismatch names the expected shape", func(t *testing.T) {
		t.Parallel()
		_, err := Value("1,2", typespec.TupleOf(typespec.Int, typespec.Int, typespec.Int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 3")
		assert.Contains(t, err.Error(), "int, int, int")
	})
}

func TestValue_Mappings(t *testing.T) {
	t.Parallel()

	t.Run("typed map", func(t *testing.T) {
		t.Parallel()
		got, err := Value("aaa:54,bbb:112", mustFromGo(t, map[string]int(nil)))
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(map[string]int{"aaa": 54, "bbb": 112}, got))
	})

	t.Run("nested mapping values in braces", func(t *testing.T) {
		t.Parallel()
		got, err := Value("aaa:{ddd:3,eee:4},bbb:{fff:5}", mustFromGo(t, map[string]map[string]int(nil)))
		require.NoError(t, err)
		expected := map[string]map[string]int{
			"aaa": {"ddd": 3, "eee": 4},
			"bbb": {"fff": 5},
		}
		assert.Empty(t, cmp.Diff(expected, got))
	})

	t.Run("untyped mapping keeps encounter order", func(t *testing.T) {
		t.Parallel()
		got, err := Value("bbb:1,aaa:2", typespec.MappingOf(typespec.String, typespec.Int))
		require.NoError(t, err)
		om, ok := got.(*orderedmap.OrderedMap[any, any])
		require.True(t, ok)
		assert.Equal(t, []any{"bbb", "aaa"}, om.Keys())
	})

	t.Run("duplicate key keeps first position, last value", func(t *testing.T) {
		t.Parallel()
		got, err := Value("a:1,b:2,a:3", typespec.MappingOf(typespec.String, typespec.Int))
		require.NoError(t, err)
		om := got.(*orderedmap.OrderedMap[any, any])
		assert.Equal(t, []any{"a", "b"}, om.Keys())
		v, ok := om.Get("a")
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("value containing colons splits once", func(t *testing.T) {
		t.Parallel()
		got, err := Value("url:http://x/y", typespec.MappingOf(typespec.String, typespec.String))
		require.NoError(t, err)
		om := got.(*orderedmap.OrderedMap[any, any])
		v, ok := om.Get("url")
		require.True(t, ok)
		assert.Equal(t, "http://x/y", v)
	})

	t.Run("pair without a colon is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Value("aaa", typespec.MappingOf(typespec.String, typespec.Int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key1:val1,key2:val2")
	})

	t.Run("unbalanced brackets are a structure error", func(t *testing.T) {
		t.Parallel()
		_, err := Value("aaa:{ddd:3", typespec.MappingOf(typespec.String, typespec.Int))
		require.Error(t, err)
	})
}

func TestValue_OptionalAndUnion(t *testing.T) {
	t.Parallel()

	t.Run("optional pointer wraps the value", func(t *testing.T) {
		t.Parallel()
		got, err := Value("7", mustFromGo(t, (*int)(nil)))
		require.NoError(t, err)
		ptr, ok := got.(*int)
		require.True(t, ok)
		assert.Equal(t, 7, *ptr)
	})

	t.Run("optional pointer accepts None", func(t *testing.T) {
		t.Parallel()
		got, err := Value("None", mustFromGo(t, (*int)(nil)))
		require.NoError(t, err)
		assert.Equal(t, (*int)(nil), got)
	})

	t.Run("union tries arms in order", func(t *testing.T) {
		t.Parallel()
		spec := typespec.UnionOf(typespec.Int, typespec.Float, typespec.SequenceOf(typespec.Int))

		got, err := Value("54", spec)
		require.NoError(t, err)
		assert.Equal(t, 54, got)

		got, err = Value("3.14", spec)
		require.NoError(t, err)
		assert.Equal(t, 3.14, got)

		got, err = Value("54,32", spec)
		require.NoError(t, err)
		assert.Equal(t, []any{54, 32}, got)
	})

	t.Run("union failure lists the arms", func(t *testing.T) {
		t.Parallel()
		_, err := Value("oops", typespec.UnionOf(typespec.Int, typespec.Float))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "int, float")
	})

	t.Run("union with a none arm accepts None", func(t *testing.T) {
		t.Parallel()
		got, err := Value("None", typespec.UnionOf(typespec.Int, typespec.None))
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestValue_RecordIsRouted(t *testing.T) {
	t.Parallel()

	spec := typespec.RecordOf(typespec.Field{Name: "name", Type: typespec.String})
	_, err := Value("anything", spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested parser")
}

func TestGuess(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		token    string
		expected any
	}{
		{token: "54", expected: 54},
		{token: "3.14", expected: 3.14},
		{token: "-5", expected: -5.0},
		{token: "none", expected: nil},
		{token: "None", expected: nil},
		{token: "True", expected: true},
		{token: "false", expected: false},
		{token: `"quoted"`, expected: "quoted"},
		{token: "'single'", expected: "single"},
		{token: "plain", expected: "plain"},
		{token: " padded ", expected: "padded"},
		{token: "", expected: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.token, func(t *testing.T) {
			t.Parallel()
			got, err := Guess(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
