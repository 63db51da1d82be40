// Package services contains stateless domain services that span aggregates.
package services
