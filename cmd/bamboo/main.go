// Command bamboo is a CLI for creating, publishing, decoding, and
// verifying Bamboo log entries against a local file store or a remote
// bamboo-store HTTP endpoint.
package main

func main() {
	Execute()
}
