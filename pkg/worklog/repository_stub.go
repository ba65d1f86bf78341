package worklog

type StubStateRepository struct {
	State   State
	Saved   []State
	LoadErr error
	SaveErr error
}

func (s *StubStateRepository) Load() (State, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.State == nil {
		return State{}, nil
	}
	return s.State, nil
}

func (s *StubStateRepository) Save(state State) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.State = state
	s.Saved = append(s.Saved, state)
	return nil
}
