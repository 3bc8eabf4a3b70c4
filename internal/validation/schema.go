package validation

// lifestyleSchema describes a raw lifestyle document before it is decoded.
const lifestyleSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["user_id", "water_intake"],
  "properties": {
    "user_id": {"type": "string", "minLength": 1, "maxLength": 128},
    "water_intake": {"type": "number", "minimum": 0, "maximum": 10000},
    "timestamp": {"type": "string", "format": "date-time"},
    "notes": {"type": "string", "maxLength": 2000},
    "food_items": {
      "type": "array",
      "maxItems": 100,
      "items": {
        "type": "object",
        "required": ["name", "serving_size", "unit", "nutritional_info"],
        "properties": {
          "name": {"type": "string", "minLength": 1, "maxLength": 200},
          "serving_size": {"type": "number", "exclusiveMinimum": 0},
          "unit": {"type": "string", "minLength": 1, "maxLength": 32},
          "nutritional_info": {
            "type": "object",
            "required": ["calories", "protein", "carbohydrates", "fat", "sodium", "sugar", "fiber", "processing_level"],
            "properties": {
              "calories": {"type": "number", "minimum": 0},
              "protein": {"type": "number", "minimum": 0},
              "carbohydrates": {"type": "number", "minimum": 0},
              "fat": {"type": "number", "minimum": 0},
              "sodium": {"type": "number", "minimum": 0},
              "sugar": {"type": "number", "minimum": 0},
              "fiber": {"type": "number", "minimum": 0},
              "preservatives": {"type": "array", "items": {"type": "string"}},
              "processing_level": {"type": "integer", "minimum": 1, "maximum": 5}
            }
          }
        }
      }
    },
    "sleep_data": {
      "type": ["object", "null"],
      "required": ["duration", "quality", "bedtime", "wake_time", "interruptions"],
      "properties": {
        "duration": {"type": "number", "minimum": 0, "maximum": 24},
        "quality": {"type": "integer", "minimum": 1, "maximum": 10},
        "bedtime": {"$ref": "#/definitions/clock"},
        "wake_time": {"$ref": "#/definitions/clock"},
        "interruptions": {"type": "integer", "minimum": 0},
        "timestamp": {"type": "string", "format": "date-time"}
      }
    },
    "daily_habits": {
      "type": "array",
      "maxItems": 100,
      "items": {
        "type": "object",
        "required": ["type", "intensity"],
        "properties": {
          "type": {"enum": ["exercise", "stress", "screen_time", "caffeine", "alcohol", "other"]},
          "intensity": {"type": "integer", "minimum": 1, "maximum": 10},
          "duration": {"type": ["number", "null"], "minimum": 0},
          "timing": {"oneOf": [{"$ref": "#/definitions/clock"}, {"type": "null"}]},
          "notes": {"type": "string", "maxLength": 500}
        }
      }
    }
  },
  "definitions": {
    "clock": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$"}
  }
}`
