package settings

import (
	"encoding/json"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

// hclFile is the HCL form of a settings file:
//
//	lsp "liquid" {
//	  initialization_options = { ... }
//	  settings               = { ... }
//	  binary {
//	    path      = "/usr/local/bin/shopify"
//	    arguments = ["theme", "language-server"]
//	  }
//	}
type hclFile struct {
	Languages []*hclLanguage `hcl:"lsp,block"`
	Remain    hcl.Body       `hcl:",remain"`
}

type hclLanguage struct {
	Name                  string         `hcl:"name,label"`
	InitializationOptions hcl.Expression `hcl:"initialization_options,optional"`
	Settings              hcl.Expression `hcl:"settings,optional"`
	Binary                *hclBinary     `hcl:"binary,block"`
}

type hclBinary struct {
	Path      string            `hcl:"path,optional"`
	Arguments []string          `hcl:"arguments,optional"`
	Env       map[string]string `hcl:"env,optional"`
}

func decodeHCL(path string, data []byte) (*settingsFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL %s: %s", path, diags.Error())
	}

	var cfg hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL %s: %s", path, diags.Error())
	}

	out := &settingsFile{LSP: map[string]*LanguageSettings{}}
	for _, lang := range cfg.Languages {
		initOpts, err := hclDocument(lang.InitializationOptions)
		if err != nil {
			return nil, errors.Errorf("decoding %s initialization_options in %s: %w", lang.Name, path, err)
		}
		set, err := hclDocument(lang.Settings)
		if err != nil {
			return nil, errors.Errorf("decoding %s settings in %s: %w", lang.Name, path, err)
		}

		ls := &LanguageSettings{InitializationOptions: initOpts, Settings: set}
		if lang.Binary != nil {
			ls.Binary = &BinarySettings{
				Path:      lang.Binary.Path,
				Arguments: lang.Binary.Arguments,
				Env:       lang.Binary.Env,
			}
		}
		out.LSP[lang.Name] = ls
	}

	return out, nil
}

// hclDocument evaluates a static object expression into a Document by way of
// its JSON form. A missing or null attribute yields nil.
func hclDocument(expr hcl.Expression) (Document, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.New(diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, errors.Errorf("expected an object, got %s", val.Type().FriendlyName())
	}

	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return nil, errors.Errorf("encoding value: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Errorf("decoding value: %w", err)
	}
	return doc, nil
}
