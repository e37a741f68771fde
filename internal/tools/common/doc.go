// Package common holds helpers shared by the tool packages: tenant
// extraction from request arguments and the instrumentation wrapper
// applied to every tool handler.
package common
