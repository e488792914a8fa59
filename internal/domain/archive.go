package domain

// CanTransitionArchive reports whether an archive may move from one status
// to another. Pending archives can be validated or rejected; a rejected
// archive can still be validated by a fresh staff review. Validated is
// terminal.
func CanTransitionArchive(from, to ApprovalStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusValidated || to == StatusRejected
	case StatusRejected:
		return to == StatusValidated
	}
	return false
}

// TransitionArchive applies a status change after checking both the actor's
// capability and the state machine. The archive is mutated in place only on
// success.
func TransitionArchive(a *Archive, actor Role, to ApprovalStatus) error {
	if !CanReviewArchive(actor) {
		return ErrInsufficientRole
	}
	if !CanTransitionArchive(a.Status, to) {
		return ErrInvalidTransition
	}
	a.Status = to
	return nil
}
