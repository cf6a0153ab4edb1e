//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"adprov/pkg/config"
	"adprov/pkg/engine"
	"adprov/pkg/provision"
	"adprov/pkg/settings"
)

// Each Web Worker loads its own WASM instance; nothing is shared between
// workers. The page keeps the serialized configuration and passes it to
// every adprovGenerate call.

var (
	service        *provision.Service
	directoryIndex *engine.DirectoryIndex
)

func errorJSON(msg string) string {
	errJSON, _ := json.Marshal(map[string]string{"error": msg})
	return string(errJSON)
}

func bytesArg(v js.Value) []byte {
	data := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(data, v)
	return data
}

// loadConfig handles adprovLoadConfig.
// args[0] = Uint8Array (xlsx or csv bytes)
// args[1] = string (sheet name, "" for the first sheet)
// Returns: JSON with "configuration" (serialized, pass back to generate)
// and "warnings".
func loadConfig(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorJSON("loadConfig requires 2 arguments: Uint8Array and sheet")
	}

	cfg, err := config.Load(bytesArg(args[0]), args[1].String())
	if err != nil {
		return errorJSON(err.Error())
	}
	serialized, err := config.Serialize(cfg)
	if err != nil {
		return errorJSON(err.Error())
	}

	resultJSON, _ := json.Marshal(map[string]any{
		"configuration": serialized,
		"warnings":      cfg.Warnings,
		"ouOptions":     cfg.OU.Keys(),
		"managers":      cfg.Managers.Keys(),
		"departments":   cfg.Organigramma.Keys(),
	})
	return string(resultJSON)
}

// loadDirectory handles adprovLoadDirectory.
// args[0] = Uint8Array (directory export)
// args[1] = string (column map JSON, may be "")
func loadDirectory(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorJSON("loadDirectory requires 2 arguments: Uint8Array and columnMapJSON")
	}

	index, warnings, err := provision.LoadDirectory(bytesArg(args[0]), args[1].String())
	if err != nil {
		return errorJSON(err.Error())
	}
	directoryIndex = index

	resultJSON, _ := json.Marshal(map[string]any{"stats": index.Stats, "warnings": warnings})
	return string(resultJSON)
}

// generate handles adprovGenerate.
// args[0] = string (serialized configuration from loadConfig)
// args[1] = string (variant name)
// args[2] = string (form JSON)
// Returns: JSON result; the zip is exposed as "bundle" (Uint8Array) on a
// wrapper object so it does not go through JSON.
func generate(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorJSON("generate requires 3 arguments: configuration, variant and formJSON")
	}

	cfg, err := config.Deserialize([]byte(args[0].String()))
	if err != nil {
		return errorJSON(err.Error())
	}
	var form provision.Form
	if err := json.Unmarshal([]byte(args[2].String()), &form); err != nil {
		return errorJSON(err.Error())
	}

	result, err := service.Generate(context.Background(), cfg, args[1].String(), form, directoryIndex)
	if err != nil {
		return errorJSON(err.Error())
	}
	bundle, err := result.Bundle()
	if err != nil {
		return errorJSON(err.Error())
	}

	resultJSON, _ := json.Marshal(result)
	out := js.Global().Get("Object").New()
	out.Set("result", string(resultJSON))
	out.Set("bundleName", result.BundleName())
	array := js.Global().Get("Uint8Array").New(len(bundle))
	js.CopyBytesToJS(array, bundle)
	out.Set("bundle", array)
	return out
}

func main() {
	cfg, err := settings.InitConfig("")
	if err != nil {
		panic(err)
	}
	service = provision.NewService(cfg)

	js.Global().Set("adprovLoadConfig", js.FuncOf(loadConfig))
	js.Global().Set("adprovLoadDirectory", js.FuncOf(loadDirectory))
	js.Global().Set("adprovGenerate", js.FuncOf(generate))

	// Block forever; the module stays alive for the page.
	select {}
}
