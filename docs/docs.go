// Package docs holds the OpenAPI description served under /swagger when the
// binary is built with -tags=swagger. Regenerate with `swag init -g cmd/gestured/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "gestured maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/models/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Registry health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/api/models/available": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Loaded model metadata",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AvailableResponse"}}
                }
            }
        },
        "/api/models/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Health plus load diagnostics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        },
        "/api/models/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inference"],
                "summary": "Classify a base64 image with one model",
                "parameters": [
                    {"description": "Prediction request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.PredictionResult"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.PredictionResult"}}
                }
            }
        },
        "/api/models/predict/path": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inference"],
                "summary": "Classify an image file under the server's image root",
                "parameters": [
                    {"description": "Path prediction request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PathPredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/models/compare": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["inference"],
                "summary": "Run one image through several models",
                "parameters": [
                    {"description": "Comparison request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CompareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ComparisonResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.Region": {
            "type": "object",
            "properties": {
                "x": {"type": "integer", "example": 0},
                "y": {"type": "integer", "example": 0},
                "width": {"type": "integer", "example": 200},
                "height": {"type": "integer", "example": 200}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {
                "image": {"description": "Base64 encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP). Data URLs are accepted.", "type": "string"},
                "model": {"type": "string", "example": "asl_alphabet"},
                "confidence_threshold": {"type": "number", "example": 0.5},
                "crop": {"$ref": "#/definitions/types.Region"}
            }
        },
        "types.PathPredictRequest": {
            "type": "object",
            "properties": {
                "path": {"type": "string", "example": "samples/a.jpg"},
                "model": {"type": "string", "example": "asl_alphabet"},
                "confidence_threshold": {"type": "number", "example": 0.5},
                "crop": {"$ref": "#/definitions/types.Region"}
            }
        },
        "types.CompareRequest": {
            "type": "object",
            "properties": {
                "image": {"type": "string"},
                "models": {"type": "array", "items": {"type": "string"}, "example": ["asl_alphabet", "sign_mnist"]},
                "confidence_threshold": {"type": "number", "example": 0.5},
                "crop": {"$ref": "#/definitions/types.Region"}
            }
        },
        "types.PredictionResult": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "example": "asl_alphabet"},
                "prediction": {"type": "string", "example": "B"},
                "confidence": {"type": "number", "example": 0.93},
                "confidence_percent": {"type": "string", "example": "93.00%"},
                "all_predictions": {"type": "object", "additionalProperties": {"type": "number"}},
                "below_threshold": {"type": "boolean"},
                "warning": {"type": "string", "example": "Low confidence: 42.00%"},
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "error_kind": {"type": "string", "enum": ["model_not_found", "invalid_image", "inference_failure"]},
                "available_models": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ComparisonResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "timestamp": {"type": "string"},
                "predictions": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.PredictionResult"}},
                "compared_models": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "sign_mnist"},
                "display_name": {"type": "string", "example": "Sign Language MNIST"},
                "input_shape": {"type": "array", "items": {"type": "integer"}, "example": [28, 28, 1]},
                "output_shape": {"type": "array", "items": {"type": "integer"}, "example": [26]},
                "classes": {"type": "array", "items": {"type": "string"}},
                "num_classes": {"type": "integer", "example": 26},
                "params": {"type": "integer", "example": 1234567},
                "layout": {"type": "string", "example": "nhwc"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string"},
                "loaded_models": {"type": "array", "items": {"type": "string"}},
                "models_info": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.ModelInfo"}}
            }
        },
        "types.AvailableResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "timestamp": {"type": "string"},
                "models": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.ModelInfo"}}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"},
                "timestamp": {"type": "string"},
                "health": {"$ref": "#/definitions/types.HealthResponse"},
                "failed_models": {"type": "object", "additionalProperties": {"type": "string"}},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "runtime": {"$ref": "#/definitions/types.RuntimeReport"}
            }
        },
        "types.RuntimeReport": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "gestured API",
	Description:      "Multi-model hand-gesture image classification.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
