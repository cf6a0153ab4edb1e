package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "consip.it", cfg.MailDomain)
	assert.Equal(t, "consipspa.mail.onmicrosoft.com", cfg.SecondaryMail)
	assert.Equal(t, "imac@consip.it", cfg.NotifyAddress)
	assert.Equal(t, "+39", cfg.PhonePrefix)
	require.Len(t, cfg.Variants, 3)

	v, ok := cfg.Variant("Somministrato")
	require.True(t, ok)
	assert.True(t, v.External)
	assert.True(t, v.RequireExpiry)
	assert.Equal(t, "esterna_stage", v.GroupApp)

	_, ok = cfg.Variant("missing")
	assert.False(t, ok)
}

func TestInitConfig_EnvOverride(t *testing.T) {
	t.Setenv("ADPROV_SERVER_ADDR", ":9090")
	t.Setenv("ADPROV_MAIL_DOMAIN", "example.it")

	cfg, err := InitConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "example.it", cfg.MailDomain)
}

func TestInitConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adprov.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_addr: ":7000"
variants:
  - name: consulente
    title: Nuovo Consulente
    sheet: Consulenti
    external: true
    ou_key: ou_esterna_stage
    group_app: esterna_stage
    file_suffix: consulente
    quote_columns: [OU, mobile]
`), 0o644))

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ServerAddr)
	require.Len(t, cfg.Variants, 1)
	assert.Equal(t, Variant{
		Name:         "consulente",
		Title:        "Nuovo Consulente",
		Sheet:        "Consulenti",
		External:     true,
		OUKey:        "ou_esterna_stage",
		GroupApp:     "esterna_stage",
		FileSuffix:   "consulente",
		QuoteColumns: []string{"OU", "mobile"},
	}, cfg.Variants[0])
}

func TestInitConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adprov.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variants:\n  - name: a\n    sheet: s\n  - name: A\n    sheet: t\n"), 0o644))

	_, err := InitConfig(path)
	assert.Error(t, err)

	_, err = InitConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
