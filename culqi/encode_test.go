package culqi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_FlattensNestedObjects(t *testing.T) {
	value := Object{}.
		add("amount", int64(1000)).
		add("metadata", Object{}.
			add("orderId", "ord_123").
			add("env", "staging"))

	pairs := Encode(value, nil)

	assert.Equal(t, []Pair{
		{Path: "amount", Value: "1000"},
		{Path: "metadata.orderId", Value: "ord_123"},
		{Path: "metadata.env", Value: "staging"},
	}, pairs)
}

func TestEncode_ArraysUseIndexedPaths(t *testing.T) {
	value := Object{}.add("items", []any{
		Object{}.add("id", "a"),
		Object{}.add("id", "b"),
	})

	pairs := Encode(value, nil)

	assert.Equal(t, []Pair{
		{Path: "items[0].id", Value: "a"},
		{Path: "items[1].id", Value: "b"},
	}, pairs)
}

func TestEncode_NilValuesAreOmitted(t *testing.T) {
	value := Object{}.
		add("email", "a@b.com").
		add("phone", nil).
		add("nested", Object{}.add("inner", nil))

	pairs := Encode(value, nil)

	assert.Equal(t, []Pair{{Path: "email", Value: "a@b.com"}}, pairs)
}

func TestEncode_IgnoreListDropsRootFields(t *testing.T) {
	value := Object{}.
		add("limit", int64(50)).
		add("before", "cus_1").
		add("after", "cus_2")

	pairs := Encode(value, []string{"before", "after"})

	assert.Equal(t, []Pair{{Path: "limit", Value: "50"}}, pairs)
}

func TestEncode_ScalarFormatting(t *testing.T) {
	value := Object{}.
		add("captured", true).
		add("count", 7).
		add("rate", 0.5)

	pairs := Encode(value, nil)

	assert.Equal(t, []Pair{
		{Path: "captured", Value: "true"},
		{Path: "count", Value: "7"},
		{Path: "rate", Value: "0.5"},
	}, pairs)
}

func TestEncodeQuery_PreservesOrderAndEscapes(t *testing.T) {
	value := Object{}.
		add("email", "a+b@c.com").
		add("first_name", "Ana Maria").
		add("amount", int64(100))

	got := EncodeQuery(value, nil)

	assert.Equal(t, "email=a%2Bb%40c.com&first_name=Ana+Maria&amount=100", got)
}

func TestEncodeQuery_Empty(t *testing.T) {
	assert.Equal(t, "", EncodeQuery(Object{}, nil))
}

func TestObject_MarshalJSONKeepsOrder(t *testing.T) {
	value := Object{}.
		add("z", 1).
		add("a", 2).
		add("m", Object{}.add("b", "x"))

	data, err := json.Marshal(value)

	assert.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":{"b":"x"}}`, string(data))
}
