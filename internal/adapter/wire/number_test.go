package wire

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Number
	}{
		{"number", `1250.5`, 1250.5},
		{"integer", `30`, 30},
		{"numeric string", `"2500"`, 2500},
		{"thousands separator", `"1,250.50"`, 1250.5},
		{"currency symbol", `"$300"`, 300},
		{"null", `null`, 0},
		{"garbage string", `"abc"`, 0},
		{"empty string", `""`, 0},
		{"boolean", `true`, 0},
		{"object", `{"a":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V Number `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"v":`+tt.in+`}`), &got))
			assert.Equal(t, tt.want, got.V)
		})
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		V Number `json:"v"`
	}{V: 213455.78})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":213455.78}`, string(raw))
}

func TestNumber_UnmarshalTOML(t *testing.T) {
	var got struct {
		A Number `toml:"a"`
		B Number `toml:"b"`
		C Number `toml:"c"`
	}
	_, err := toml.Decode("a = 7\nb = 7.5\nc = \"$1,000\"\n", &got)
	require.NoError(t, err)
	assert.Equal(t, Number(7), got.A)
	assert.Equal(t, Number(7.5), got.B)
	assert.Equal(t, Number(1000), got.C)
}

func TestNumber_UnmarshalYAML(t *testing.T) {
	var got struct {
		A Number `yaml:"a"`
		B Number `yaml:"b"`
		C Number `yaml:"c"`
		D Number `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 30\nb: \"1,250.50\"\nc: nope\nd: [1, 2]\n"), &got))
	assert.Equal(t, Number(30), got.A)
	assert.Equal(t, Number(1250.5), got.B)
	assert.Equal(t, Number(0), got.C)
	assert.Equal(t, Number(0), got.D)
}

func TestNumber_Int(t *testing.T) {
	assert.Equal(t, 30, Number(29.6).Int())
	assert.Equal(t, 15, Number(15).Int())
	assert.Equal(t, 0, Number(0).Int())
}
