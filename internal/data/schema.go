package data

// schemaJSON describes the reference document produced by the data scraper.
// Range objects are written as {"Min","Max"} by the scraper and {"min","max"}
// by hand-made fixtures, so their keys are not constrained here.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["base_groups"],
  "properties": {
    "base_groups": {
      "type": "array",
      "items": {"$ref": "#/definitions/baseGroup"}
    }
  },
  "definitions": {
    "baseGroup": {
      "type": "object",
      "anyOf": [
        {"required": ["base_group"]},
        {"required": ["bgroup"]}
      ],
      "properties": {
        "base_group": {"type": "string"},
        "bgroup": {"type": "string"},
        "base_type": {"type": "string"},
        "prefixes": {"type": "array", "items": {"$ref": "#/definitions/affix"}},
        "suffixes": {"type": "array", "items": {"$ref": "#/definitions/affix"}}
      }
    },
    "affix": {
      "type": "object",
      "required": ["description", "mod_groups", "tiers"],
      "properties": {
        "description": {"type": "string"},
        "mod_groups": {"type": "array", "items": {"type": "string"}},
        "tiers": {"type": "array", "items": {"$ref": "#/definitions/tier"}}
      }
    },
    "tier": {
      "type": "object",
      "required": ["tier", "values"],
      "properties": {
        "tier": {"type": "string"},
        "ilvl": {"type": "integer"},
        "weighting": {"type": "integer"},
        "weight_percent": {"type": "number"},
        "affix_percent": {"type": "number"},
        "float": {"type": "boolean"},
        "values": {
          "type": "array",
          "minItems": 1,
          "maxItems": 2,
          "items": {"type": "object"}
        }
      }
    }
  }
}`
