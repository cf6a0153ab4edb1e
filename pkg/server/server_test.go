package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"adprov/pkg/record"
	"adprov/pkg/settings"
)

const configCSV = `Section,Key/App,Label/Gruppi/Value
OU,utenti_standard,"OU=Standard,DC=corp,DC=local"
InserimentoGruppi,interna,GRP_VPN
InserimentoGruppi,esterna_stage,GRP_EXT
Defaults,ou_esterna_stage,"OU=Esterni,DC=corp,DC=local"
Defaults,company_interna,Acme SpA
`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg, err := settings.InitConfig("")
	require.NoError(t, err)
	return New(NewApp(cfg))
}

func multipartBody(t *testing.T, fileField, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	body, contentType := multipartBody(t, "config", "config.csv", []byte(configCSV), map[string]string{"variant": "interna"})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decode(t, resp)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func postForm(t *testing.T, app *fiber.App, path string, form map[string]any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(form)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHealthAndVariants(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/variants", nil))
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Len(t, out["variants"], 3)
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode(t, resp)
	session := out["session"].(map[string]any)
	cfg := session["configuration"].(map[string]any)
	assert.Equal(t, "Risorsa Interna", cfg["sheet"])

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)
}

func TestCreateSession_Errors(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(""))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, contentType := multipartBody(t, "config", "config.csv", []byte("foo,bar\n1,2\n"), nil)
	req = httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, contentType = multipartBody(t, "config", "config.csv", []byte(configCSV), map[string]string{"variant": "nope"})
	req = httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	req.Header.Set("Content-Type", contentType)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPreview(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := postForm(t, app, "/api/sessions/"+id+"/forms/interna/preview", map[string]any{
		"givenName":    "mario",
		"familyName":   "rossi",
		"mobileNumber": "3331234567",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	identity := out["identity"].(map[string]any)
	assert.Equal(t, "mario.rossi", identity["accountName"])
	assert.Equal(t, "Rossi Mario", identity["displayName"])
	assert.Contains(t, out["preview"], "# Nuova Risorsa Interna")
}

func TestPreview_Errors(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := postForm(t, app, "/api/sessions/unknown/forms/interna/preview", map[string]any{"givenName": "a"})
	assert.Equal(t, fiber.StatusPreconditionFailed, resp.StatusCode)
	assert.Equal(t, "configuration required", decode(t, resp)["message"])

	resp = postForm(t, app, "/api/sessions/"+id+"/forms/nope/preview", map[string]any{"givenName": "a"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCSVDownload(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := postForm(t, app, "/api/sessions/"+id+"/forms/somministrato/csv?kind=user", map[string]any{
		"givenName":  "Bartolomeo",
		"familyName": "Montecalvo",
		"expiryDate": "01-06-2025",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="Montecalvo_B_esterno.csv"`)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	rows, err := record.Parse(string(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b.montecalvo.ext", rows[1][0])
	assert.Equal(t, "06/02/2025 00:00", rows[1][13])

	resp = postForm(t, app, "/api/sessions/"+id+"/forms/somministrato/csv?kind=computer", map[string]any{"givenName": "A", "familyName": "B"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "no device, no computer record")

	resp = postForm(t, app, "/api/sessions/"+id+"/forms/somministrato/csv?kind=printer", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBundleDownload(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	resp := postForm(t, app, "/api/sessions/"+id+"/forms/interna/bundle", map[string]any{"givenName": "Anna", "familyName": "Verdi"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get(fiber.HeaderContentType))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Len(t, reader.File, 5)
}

func TestDirectoryUpload(t *testing.T) {
	app := newTestApp(t)
	id := createSession(t, app)

	export := []byte("sAMAccountName,mail,displayName\nmario.rossi,mario.rossi@consip.it,Rossi Mario\n")
	body, contentType := multipartBody(t, "export", "export.csv", export, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/directory", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postForm(t, app, "/api/sessions/"+id+"/forms/interna/preview", map[string]any{"givenName": "Mario", "familyName": "Rossi"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	review := decode(t, resp)["review"].(map[string]any)
	assert.Equal(t, "CRITICAL", review["maxSeverity"])
}

func TestCreateSession_MissingSheetListsSheets(t *testing.T) {
	app := newTestApp(t)

	f := excelize.NewFile()
	_, err := f.NewSheet("Stage")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Stage", "A1", &[]any{"Section", "Key/App", "Label/Gruppi/Value"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	body, contentType := multipartBody(t, "config", "config.xlsx", buf.Bytes(), map[string]string{"variant": "interna"})
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	out := decode(t, resp)
	assert.ElementsMatch(t, []any{"Sheet1", "Stage"}, out["sheets"])
}
