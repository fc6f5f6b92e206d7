package main

// General API documentation for swaggo. Run `swag init -g cmd/gestured/docs.go` to regenerate docs/.
//
// @title           gestured API
// @version         1.0
// @description     Multi-model hand-gesture image classification.
//
// @contact.name   gestured maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
