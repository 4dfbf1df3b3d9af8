// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, and maximum delay. It is used for OCI API calls
// that may fail transiently, such as rate-limited list and delete requests.
package retry
