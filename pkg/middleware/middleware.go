// Package middleware 提供 gin 中间件：请求日志、CORS、指标、追踪、限流与熔断.
package middleware
