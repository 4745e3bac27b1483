package events

// Aliases for the external test package; module_test.go lives outside the
// package to avoid an import cycle through the shared test helpers.

type PublisherParams = publisherParams

var NewPublisher = newPublisher
