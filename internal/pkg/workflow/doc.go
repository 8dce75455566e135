// Package workflow holds the fixed drivers shared by use cases.
//
// Registration creates an entity: uniqueness check, validation, build, save
// and a best-effort notification. Mutation loads an actor and an aggregate,
// applies a caller supplied mutation, persists and shapes a response.
//
// Every collaborator call made by a driver goes through Call, Do or Find.
// Errors that are already *goerror.Error pass through; anything else is
// logged and wrapped with goerror.NewServer so callers only ever see the
// goerror taxonomy.
package workflow
