package flags

import (
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/urfave/cli/v2"
)

func TestEnumValue(t *testing.T) {
	e := &EnumValue{Enum: []string{"red", "blue"}, Default: "red"}
	assert.Equal(t, "red", e.String())
	require.NoError(t, e.Set("blue"))
	assert.Equal(t, "blue", e.String())
	require.ErrorContains(t, "allowed values are red, blue", e.Set("green"))
	assert.Equal(t, "blue", e.String())
}

func TestNewEnumFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "default", args: []string{"app"}, want: "b"},
		{name: "allowed value", args: []string{"app", "--format", "a"}, want: "a"},
		{name: "rejected value", args: []string{"app", "--format", "c"}, wantErr: "allowed values are a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			app := &cli.App{
				Flags: []cli.Flag{NewEnumFlag("format", "output format", "b", "a", "b")},
				Action: func(cliCtx *cli.Context) error {
					got = cliCtx.String("format")
					return nil
				},
			}
			err := app.Run(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
