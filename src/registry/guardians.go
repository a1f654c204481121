package registry

// AddGuardian grants moderation rights to an account. Guardian only,
// adding an existing guardian is a no-op.
func (self *Engine) AddGuardian(account, requester AccountID) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.guardians[requester]; !ok {
		return &AccessDeniedError{Caller: requester}
	}

	self.guardians[account] = struct{}{}

	self.log.WithField("account", account).WithField("requester", requester).Info("Guardian added")

	return nil
}

// RemoveGuardian revokes moderation rights. The last guardian cannot
// remove itself, the registry would become unmoderatable.
func (self *Engine) RemoveGuardian(account, requester AccountID) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.guardians[requester]; !ok {
		return &AccessDeniedError{Caller: requester}
	}

	if _, ok := self.guardians[account]; !ok {
		return &NotFoundError{Kind: "guardian", Key: account}
	}

	if len(self.guardians) == 1 {
		return &ConflictError{Field: "guardians", Value: "cannot remove the last guardian"}
	}

	delete(self.guardians, account)

	self.log.WithField("account", account).WithField("requester", requester).Info("Guardian removed")

	return nil
}

// Guardians returns the guardian set as a sorted slice
func (self *Engine) Guardians() (out []AccountID) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out = make([]AccountID, 0, len(self.guardians))
	for account := range self.guardians {
		out = append(out, account)
	}
	sortStrings(out)
	return
}

// SetDisabledCount overwrites the disabled counter. Guardian only,
// exists to correct historical drift.
func (self *Engine) SetDisabledCount(count uint64, requester AccountID) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.guardians[requester]; !ok {
		return &AccessDeniedError{Caller: requester}
	}

	self.disabledCount = count
	self.report().State.DisabledCount.Store(count)

	return nil
}

func (self *Engine) DisabledCount() uint64 {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return self.disabledCount
}
