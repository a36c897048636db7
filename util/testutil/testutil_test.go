package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Person struct {
	Name string
	Age  int
}

func TestJS(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{
			name: "simple struct",
			arg:  Person{"John Doe", 30},
			want: `{"Name":"John Doe","Age":30}`,
		},
		{
			name: "ids",
			arg:  []int{1, 3},
			want: `[1,3]`,
		},
		{
			name: "unencodable",
			arg:  make(chan int),
			want: "(chan int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "unencodable" {
				assert.True(t, strings.HasPrefix(JS(tt.arg), tt.want))
				return
			}
			assert.Equal(t, tt.want, JS(tt.arg))
		})
	}
}

func TestDwimjs(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"a": 1.0}, Dwimjs(`{"a":1}`))
	assert.Equal(t, []interface{}{"x"}, Dwimjs([]byte(`["x"]`)))
	assert.Equal(t, 42, Dwimjs(42))
	assert.Panics(t, func() { Dwimjs("{") })
}

func TestDoc(t *testing.T) {
	assert.Equal(t, "<DOC>\n<DOCID>msg00007</DOCID>\nSubject: test 7\n\nhi</DOC>\n", Doc(7, "hi"))
	assert.Equal(t, Doc(1, "a")+Doc(2, "b"), Docs("a", "b"))
}
