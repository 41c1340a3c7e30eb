package intake

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "invoices.json"

const schemaText = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "invoice_number":     {"$ref": "#/definitions/text"},
      "external_reference": {"$ref": "#/definitions/text"},
      "invoice_date":       {"$ref": "#/definitions/text"},
      "due_date":           {"$ref": "#/definitions/text"},
      "seller_name":        {"$ref": "#/definitions/text"},
      "seller_address":     {"$ref": "#/definitions/text"},
      "seller_tax_id":      {"$ref": "#/definitions/text"},
      "buyer_name":         {"$ref": "#/definitions/text"},
      "buyer_address":      {"$ref": "#/definitions/text"},
      "buyer_tax_id":       {"$ref": "#/definitions/text"},
      "currency":           {"$ref": "#/definitions/text"},
      "net_total":          {"$ref": "#/definitions/amount"},
      "tax_amount":         {"$ref": "#/definitions/amount"},
      "gross_total":        {"$ref": "#/definitions/amount"},
      "tax_rate":           {"$ref": "#/definitions/amount"},
      "line_items": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "properties": {
            "description": {"$ref": "#/definitions/text"},
            "quantity":    {"$ref": "#/definitions/amount"},
            "unit_price":  {"$ref": "#/definitions/amount"},
            "line_total":  {"$ref": "#/definitions/amount"}
          }
        }
      }
    }
  },
  "definitions": {
    "text": {"type": ["string", "null"]},
    "amount": {
      "oneOf": [
        {"type": ["number", "null"]},
        {"type": "string", "pattern": "^-?\\d+(\\.\\d+)?$"}
      ]
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaText)); err != nil {
		return nil, err
	}

	return compiler.Compile(schemaURL)
})
