// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware holds the http.Handler decorators mounted by the API
// router. The router applies them in this order: correlation id, access
// log, request metrics, panic recovery, CORS, rate limit, authentication.
package middleware
