package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestJSONCodec_WireShape(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&AddItemRequest{Item: "Eggs", List: "Shopping"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"Eggs","list":"Shopping"}`, string(b))

	var got ListResponse
	require.NoError(t, c.Unmarshal([]byte(`{"title":"Today","items":[{"id":"1","name":"x"}]}`), &got))
	assert.Equal(t, ListResponse{Title: "Today", Items: []Item{{ID: "1", Name: "x"}}}, got)

	assert.Error(t, c.Unmarshal([]byte(`{`), &got))
}

func TestServiceDesc(t *testing.T) {
	assert.Equal(t, "/todolist.TodoService/GetList", FullMethod("GetList"))

	names := make([]string, 0, len(TodoServiceDesc.Methods))
	for _, m := range TodoServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.Equal(t, []string{"Ping", "GetList", "AddItem", "DeleteItem", "ListLists", "Backup"}, names)
}
