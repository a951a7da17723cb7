package main

// General API documentation for swaggo. The registered document lives in
// internal/httpapi/docs.
//
// @title           walletd API
// @version         1.0
// @description     Wallet event notifications and network registry.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
