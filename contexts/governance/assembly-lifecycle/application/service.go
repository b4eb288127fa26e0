package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	domainerrors "comunidad/contexts/governance/assembly-lifecycle/domain/errors"
	"comunidad/contexts/governance/assembly-lifecycle/ports"
)

// PlanAssemblyCommand is the write-model input for assembly planning.
type PlanAssemblyCommand struct {
	Type                    entities.AssemblyType
	Title                   string
	ConvocationDate         time.Time
	AssemblyDate            time.Time
	FirstCallTime           time.Time
	SecondCallTime          time.Time
	MinimumQuorumFirstCall  float64
	MinimumQuorumSecondCall float64
	Hybrid                  bool
	VirtualLink             string
	Agenda                  []AgendaItemInput
}

type AgendaItemInput struct {
	Topic        string
	Description  string
	PresenterID  string
	RequiresVote bool
	VotingType   entities.VotingType
}

// RegisterAttendanceCommand upserts one property's quorum entry.
type RegisterAttendanceCommand struct {
	AssemblyID    string
	PropertyID    string
	Status        entities.AttendanceStatus
	CheckInMethod entities.CheckInMethod
	ProxyHolder   string
	ProxyDocument string
}

// QuorumSummary is the read model exposed for the assembly floor.
type QuorumSummary struct {
	AssemblyID      string
	Number          string
	Status          entities.Status
	TotalProperties int
	Present         int
	Represented     int
	Absent          int
	CurrentQuorum   float64
	Threshold       float64
	ThresholdActive bool
	QuorumReached   bool
}

// Service orchestrates the assembly state machine. All transitions persist
// through the repository; derived agreements leave through the outbound
// creator port at submit time.
type Service struct {
	Assemblies ports.AssemblyRepository
	Properties ports.PropertyDirectory
	Sessions   ports.SessionDirectory
	Agreements ports.AgreementCreator
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	// DerivedDueDays sets the due window for agreements spawned at submit.
	DerivedDueDays int
	Logger         *slog.Logger
}

// Plan registers a future assembly and assigns its official number.
func (s Service) Plan(ctx context.Context, cmd PlanAssemblyCommand) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	now := s.now()
	title := strings.TrimSpace(cmd.Title)
	if !cmd.Type.Valid() || title == "" {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}
	if !cmd.ConvocationDate.Before(cmd.AssemblyDate) || !cmd.AssemblyDate.After(now) {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}
	if !cmd.FirstCallTime.Before(cmd.SecondCallTime) {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}
	if cmd.MinimumQuorumFirstCall <= cmd.MinimumQuorumSecondCall ||
		cmd.MinimumQuorumFirstCall > 100 || cmd.MinimumQuorumSecondCall <= 0 {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}
	if cmd.Hybrid && strings.TrimSpace(cmd.VirtualLink) == "" {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}

	agenda := make([]entities.AgendaItem, 0, len(cmd.Agenda))
	for _, input := range cmd.Agenda {
		item, err := s.buildAgendaItem(ctx, input)
		if err != nil {
			return entities.Assembly{}, err
		}
		agenda = append(agenda, item)
	}

	year := cmd.AssemblyDate.Year()
	sequence, err := s.Assemblies.NextAssemblySequence(ctx, year)
	if err != nil {
		return entities.Assembly{}, err
	}
	assemblyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Assembly{}, err
	}
	assembly := entities.Assembly{
		AssemblyID:              assemblyID,
		Number:                  entities.FormatNumber(cmd.Type, year, sequence),
		Type:                    cmd.Type,
		Title:                   title,
		ConvocationDate:         cmd.ConvocationDate.UTC(),
		AssemblyDate:            cmd.AssemblyDate.UTC(),
		FirstCallTime:           cmd.FirstCallTime.UTC(),
		SecondCallTime:          cmd.SecondCallTime.UTC(),
		MinimumQuorumFirstCall:  cmd.MinimumQuorumFirstCall,
		MinimumQuorumSecondCall: cmd.MinimumQuorumSecondCall,
		Hybrid:                  cmd.Hybrid,
		VirtualLink:             strings.TrimSpace(cmd.VirtualLink),
		Status:                  entities.StatusPlanned,
		Agenda:                  agenda,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly planned",
		"event", "assembly_planned",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
		"assembly_type", string(assembly.Type),
		"assembly_date", assembly.AssemblyDate.Format("2006-01-02"),
		"agenda_items", len(assembly.Agenda),
	)
	return assembly, nil
}

// AddAgendaItem appends a formal agenda item. The agenda freezes once the
// assembly is in session.
func (s Service) AddAgendaItem(ctx context.Context, assemblyID string, input AgendaItemInput) (entities.Assembly, error) {
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusPlanned && assembly.Status != entities.StatusConvened {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}
	item, err := s.buildAgendaItem(ctx, input)
	if err != nil {
		return entities.Assembly{}, err
	}
	assembly.Agenda = append(assembly.Agenda, item)
	assembly.UpdatedAt = s.now()
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	return assembly, nil
}

// Convene snapshots the quorum registration with every active property in
// absent state. Re-convening merges newly activated properties and never
// clears a non-absent status.
func (s Service) Convene(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusPlanned && assembly.Status != entities.StatusConvened {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}

	properties, err := s.Properties.ListActiveProperties(ctx)
	if err != nil {
		return entities.Assembly{}, err
	}
	for _, property := range properties {
		if assembly.EntryIndex(property.PropertyID) >= 0 {
			continue
		}
		assembly.Quorum = append(assembly.Quorum, entities.QuorumEntry{
			PropertyID:          property.PropertyID,
			OwnershipPercentage: property.OwnershipPercentage,
			Status:              entities.AttendanceAbsent,
		})
	}

	now := s.now()
	assembly.Status = entities.StatusConvened
	assembly.Recompute(now)
	assembly.UpdatedAt = now
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly convened",
		"event", "assembly_convened",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
		"quorum_entries", len(assembly.Quorum),
	)
	return assembly, nil
}

// RegisterAttendance upserts a quorum entry and refreshes the denormalized
// quorum fields against the threshold the clock currently selects.
func (s Service) RegisterAttendance(ctx context.Context, cmd RegisterAttendanceCommand) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	propertyID := strings.TrimSpace(cmd.PropertyID)
	if propertyID == "" || !cmd.Status.Valid() {
		return entities.Assembly{}, domainerrors.ErrInvalidAssemblyInput
	}
	if cmd.Status == entities.AttendanceRepresented && strings.TrimSpace(cmd.ProxyHolder) == "" {
		return entities.Assembly{}, domainerrors.ErrProxyRequired
	}

	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(cmd.AssemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusConvened && assembly.Status != entities.StatusInSession {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}

	now := s.now()
	index := assembly.EntryIndex(propertyID)
	if index < 0 {
		// Late activation: admit the property if the registry knows it.
		ref, found, err := s.lookupActive(ctx, propertyID)
		if err != nil {
			return entities.Assembly{}, err
		}
		if !found {
			return entities.Assembly{}, domainerrors.ErrUnknownProperty
		}
		assembly.Quorum = append(assembly.Quorum, entities.QuorumEntry{
			PropertyID:          ref.PropertyID,
			OwnershipPercentage: ref.OwnershipPercentage,
			Status:              entities.AttendanceAbsent,
		})
		index = len(assembly.Quorum) - 1
	}

	entry := assembly.Quorum[index]
	entry.Status = cmd.Status
	entry.CheckInMethod = cmd.CheckInMethod
	entry.ProxyHolder = strings.TrimSpace(cmd.ProxyHolder)
	entry.ProxyDocument = strings.TrimSpace(cmd.ProxyDocument)
	if cmd.Status.Attending() {
		attendanceTime := now
		entry.AttendanceTime = &attendanceTime
	} else {
		entry.AttendanceTime = nil
		entry.ProxyHolder = ""
		entry.ProxyDocument = ""
	}
	assembly.Quorum[index] = entry

	assembly.Recompute(now)
	assembly.UpdatedAt = now
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("attendance registered",
		"event", "assembly_attendance_registered",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"property_id", propertyID,
		"attendance_status", string(cmd.Status),
		"current_quorum", assembly.CurrentQuorumPercentage,
		"quorum_reached", assembly.QuorumReached,
	)
	return assembly, nil
}

// StartSession opens the floor. The quorum bar in force at the current call
// time must be met.
func (s Service) StartSession(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusConvened {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}
	now := s.now()
	if !assembly.QuorumReachedAt(now) {
		return entities.Assembly{}, domainerrors.ErrQuorumNotReached
	}

	assembly.Status = entities.StatusInSession
	assembly.Recompute(now)
	assembly.UpdatedAt = now
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly session started",
		"event", "assembly_session_started",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
		"current_quorum", assembly.CurrentQuorumPercentage,
	)
	return assembly, nil
}

// Complete closes the floor. Allowed only on the assembly day once the
// second call has passed.
func (s Service) Complete(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusInSession {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}
	now := s.now()
	if !sameDay(now, assembly.AssemblyDate) || now.Before(assembly.SecondCallTime) {
		return entities.Assembly{}, domainerrors.ErrNotOnAssemblyDay
	}

	assembly.Status = entities.StatusCompleted
	assembly.Recompute(now)
	assembly.UpdatedAt = now
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly completed",
		"event", "assembly_completed",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
	)
	return assembly, nil
}

// Cancel aborts a non-terminal assembly.
func (s Service) Cancel(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Terminal() {
		return entities.Assembly{}, domainerrors.ErrTerminalState
	}
	assembly.Status = entities.StatusCancelled
	assembly.UpdatedAt = s.now()
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly cancelled",
		"event", "assembly_cancelled",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
	)
	return assembly, nil
}

// Submit seals the assembly record. Every agenda item requiring a vote must
// hold a closed voting session with a result; approved items spawn one
// agreement each through the outbound creator before the status flips.
func (s Service) Submit(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	logger := ResolveLogger(s.Logger)
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return entities.Assembly{}, err
	}
	if assembly.Status != entities.StatusCompleted {
		return entities.Assembly{}, domainerrors.ErrInvalidTransition
	}
	if !assembly.QuorumReached {
		return entities.Assembly{}, domainerrors.ErrQuorumNotReached
	}

	approved := make([]entities.AgendaItem, 0)
	for _, item := range assembly.Agenda {
		if !item.RequiresVote {
			continue
		}
		session, found, err := s.Sessions.FindSessionByMotion(ctx, assembly.AssemblyID, item.Topic)
		if err != nil {
			return entities.Assembly{}, err
		}
		if !found || !session.Closed || session.Result == "" {
			logger.Warn("submit blocked by open agenda item",
				"event", "assembly_submit_agenda_not_ready",
				"module", "governance/assembly-lifecycle",
				"layer", "application",
				"assembly_id", assembly.AssemblyID,
				"topic", item.Topic,
			)
			return entities.Assembly{}, domainerrors.ErrAgendaNotReady
		}
		if session.Result == ports.SessionResultApproved {
			approved = append(approved, item)
		}
	}

	now := s.now()
	for _, item := range approved {
		derived := ports.DerivedAgreement{
			SourceRef:     assembly.AssemblyID,
			Topic:         item.Topic,
			Description:   item.Description,
			ResponsibleID: item.PresenterID,
			AgreementDate: assembly.AssemblyDate,
			DueDate:       assembly.AssemblyDate.AddDate(0, 0, s.resolveDerivedDueDays()),
		}
		if err := s.Agreements.CreateFromAssembly(ctx, derived); err != nil {
			logger.Error("derived agreement creation failed",
				"event", "assembly_submit_agreement_failed",
				"module", "governance/assembly-lifecycle",
				"layer", "application",
				"assembly_id", assembly.AssemblyID,
				"topic", item.Topic,
				"error", err.Error(),
			)
			return entities.Assembly{}, err
		}
	}

	assembly.Status = entities.StatusSubmitted
	assembly.UpdatedAt = now
	if err := s.Assemblies.SaveAssembly(ctx, assembly); err != nil {
		return entities.Assembly{}, err
	}
	logger.Info("assembly submitted",
		"event", "assembly_submitted",
		"module", "governance/assembly-lifecycle",
		"layer", "application",
		"assembly_id", assembly.AssemblyID,
		"number", assembly.Number,
		"derived_agreements", len(approved),
	)
	return assembly, nil
}

// Quorum exposes the floor summary for the current clock.
func (s Service) Quorum(ctx context.Context, assemblyID string) (QuorumSummary, error) {
	assembly, err := s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
	if err != nil {
		return QuorumSummary{}, err
	}
	now := s.now()
	threshold, active := assembly.ApplicableThreshold(now)
	summary := QuorumSummary{
		AssemblyID:      assembly.AssemblyID,
		Number:          assembly.Number,
		Status:          assembly.Status,
		TotalProperties: len(assembly.Quorum),
		CurrentQuorum:   assembly.CurrentQuorum(),
		Threshold:       threshold,
		ThresholdActive: active,
		QuorumReached:   assembly.QuorumReachedAt(now),
	}
	for _, entry := range assembly.Quorum {
		switch entry.Status {
		case entities.AttendancePresent:
			summary.Present++
		case entities.AttendanceRepresented:
			summary.Represented++
		default:
			summary.Absent++
		}
	}
	return summary, nil
}

// Get returns one assembly.
func (s Service) Get(ctx context.Context, assemblyID string) (entities.Assembly, error) {
	return s.Assemblies.GetAssembly(ctx, strings.TrimSpace(assemblyID))
}

// List returns all assemblies.
func (s Service) List(ctx context.Context) ([]entities.Assembly, error) {
	return s.Assemblies.ListAssemblies(ctx)
}

func (s Service) buildAgendaItem(ctx context.Context, input AgendaItemInput) (entities.AgendaItem, error) {
	topic := strings.TrimSpace(input.Topic)
	presenter := strings.TrimSpace(input.PresenterID)
	if topic == "" || presenter == "" {
		return entities.AgendaItem{}, domainerrors.ErrInvalidAssemblyInput
	}
	votingType := input.VotingType
	if input.RequiresVote {
		switch votingType {
		case entities.VotingSimple, entities.VotingQualified, entities.VotingUnanimous, entities.VotingSpecial:
		default:
			return entities.AgendaItem{}, domainerrors.ErrInvalidAssemblyInput
		}
	}
	itemID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.AgendaItem{}, err
	}
	return entities.AgendaItem{
		ItemID:       itemID,
		Topic:        topic,
		Description:  strings.TrimSpace(input.Description),
		PresenterID:  presenter,
		RequiresVote: input.RequiresVote,
		VotingType:   votingType,
	}, nil
}

func (s Service) lookupActive(ctx context.Context, propertyID string) (ports.PropertyRef, bool, error) {
	properties, err := s.Properties.ListActiveProperties(ctx)
	if err != nil {
		return ports.PropertyRef{}, false, err
	}
	for _, property := range properties {
		if property.PropertyID == propertyID {
			return property, true, nil
		}
	}
	return ports.PropertyRef{}, false, nil
}

func (s Service) resolveDerivedDueDays() int {
	if s.DerivedDueDays <= 0 {
		return 30
	}
	return s.DerivedDueDays
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}

func sameDay(a time.Time, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
