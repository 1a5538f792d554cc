// Package errors provides the coded error type used across simulacrum.
//
// Every layer returns *Error values so callers can branch on the code rather
// than on message text:
//
//	err := errors.NotFoundf("item %s not found", itemID).
//	    WithMeta("actor_id", actorID)
//
//	if errors.IsNotFound(err) {
//	    // stale child reference, skip it
//	}
//
// Wrap keeps the code of the wrapped error, so a NotFound raised by a
// repository is still a NotFound after an orchestrator adds context:
//
//	if err != nil {
//	    return errors.Wrapf(err, "failed to resolve action %s", uuid)
//	}
//
// # Layer guidelines
//
// Repositories return NotFound and AlreadyExists with the ids involved in the
// metadata. Orchestrators validate their inputs with InvalidArgument, check
// document types with FailedPrecondition, and wrap repository errors with the
// operation they were performing. The CLI prints GetMessage for users and
// logs the full error chain.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	if cfg.ItemRepo == nil {
//	    vb.RequiredField("ItemRepo")
//	}
//	return vb.Build()
package errors
