package bootstrap

import (
	"context"
	"errors"
	"strings"

	agreementapp "comunidad/contexts/governance/agreement-tracker/application"
	agreemententities "comunidad/contexts/governance/agreement-tracker/domain/entities"
	assemblyapp "comunidad/contexts/governance/assembly-lifecycle/application"
	assemblyentities "comunidad/contexts/governance/assembly-lifecycle/domain/entities"
	assemblyports "comunidad/contexts/governance/assembly-lifecycle/ports"
	meetingapp "comunidad/contexts/governance/committee-meeting/application"
	meetingentities "comunidad/contexts/governance/committee-meeting/domain/entities"
	meetingports "comunidad/contexts/governance/committee-meeting/ports"
	schedulerports "comunidad/contexts/governance/meeting-scheduler/ports"
	memberrors "comunidad/contexts/governance/member-registry/domain/errors"
	memberports "comunidad/contexts/governance/member-registry/ports"
	pollports "comunidad/contexts/governance/poll-engine/ports"
	propertyerrors "comunidad/contexts/governance/property-view/domain/errors"
	propertyports "comunidad/contexts/governance/property-view/ports"
	votingentities "comunidad/contexts/governance/voting-engine/domain/entities"
	votingports "comunidad/contexts/governance/voting-engine/ports"
)

// Cross-context glue lives here so each module keeps consuming its own
// narrow port types instead of importing sibling contexts.

// materializedMeetingSpace is the placeholder location stamped on meetings
// the scheduler creates; the committee reassigns it when convening.
const materializedMeetingSpace = "community hall"

// propertyRefDirectory projects the property registry into the assembly
// module's quorum snapshot shape.
type propertyRefDirectory struct {
	registry propertyports.Registry
}

func (d propertyRefDirectory) ListActiveProperties(ctx context.Context) ([]assemblyports.PropertyRef, error) {
	properties, err := d.registry.ListActiveProperties(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]assemblyports.PropertyRef, 0, len(properties))
	for _, property := range properties {
		refs = append(refs, assemblyports.PropertyRef{
			PropertyID:          property.PropertyID,
			OwnershipPercentage: property.OwnershipPercentage,
		})
	}
	return refs, nil
}

// ownershipDirectory exposes voting power lookups to the voting engine.
type ownershipDirectory struct {
	registry propertyports.Registry
}

func (d ownershipDirectory) OwnershipPercentage(ctx context.Context, propertyID string) (float64, error) {
	return d.registry.OwnershipPercentage(ctx, propertyID)
}

// memberPropertyDirectory validates member appointments against the
// property registry.
type memberPropertyDirectory struct {
	registry propertyports.Registry
}

func (d memberPropertyDirectory) GetProperty(ctx context.Context, propertyID string) (memberports.PropertyProjection, bool, error) {
	property, err := d.registry.GetProperty(ctx, propertyID)
	if errors.Is(err, propertyerrors.ErrPropertyNotFound) {
		return memberports.PropertyProjection{}, false, nil
	}
	if err != nil {
		return memberports.PropertyProjection{}, false, err
	}
	return memberports.PropertyProjection{
		PropertyID: property.PropertyID,
		Active:     property.Active,
		Resident:   property.Resident(),
	}, true, nil
}

// assemblyDirectory lets the voting engine gate sessions on live assembly
// state and the quorum snapshot.
type assemblyDirectory struct {
	assemblies assemblyapp.Service
}

func (d assemblyDirectory) GetAssembly(ctx context.Context, assemblyID string) (votingports.AssemblyProjection, error) {
	assembly, err := d.assemblies.Get(ctx, assemblyID)
	if err != nil {
		return votingports.AssemblyProjection{}, err
	}
	return votingports.AssemblyProjection{
		AssemblyID: assembly.AssemblyID,
		Status:     string(assembly.Status),
		InSession:  assembly.Status == assemblyentities.StatusInSession,
	}, nil
}

func (d assemblyDirectory) AttendanceEligible(ctx context.Context, assemblyID string, propertyID string) (bool, error) {
	assembly, err := d.assemblies.Get(ctx, assemblyID)
	if err != nil {
		return false, err
	}
	idx := assembly.EntryIndex(propertyID)
	if idx < 0 {
		return false, nil
	}
	return assembly.Quorum[idx].Status.Attending(), nil
}

// certifierDirectory answers result-certification checks from the member
// registry's permission bundles.
type certifierDirectory struct {
	members memberports.MemberRepository
}

func (d certifierDirectory) CanCertify(ctx context.Context, memberID string) (bool, error) {
	member, err := d.members.GetMember(ctx, memberID)
	if errors.Is(err, memberrors.ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.Active && member.Permissions.SignDocuments, nil
}

// sessionDirectory resolves voting sessions for the assembly submit gate.
type sessionDirectory struct {
	sessions votingports.SessionRepository
}

func (d sessionDirectory) FindSessionByMotion(ctx context.Context, assemblyID string, motion string) (assemblyports.SessionRef, bool, error) {
	sessions, err := d.sessions.ListSessionsByAssembly(ctx, assemblyID)
	if err != nil {
		return assemblyports.SessionRef{}, false, err
	}
	for _, session := range sessions {
		if session.Motion != motion {
			continue
		}
		ref := assemblyports.SessionRef{
			SessionID: session.SessionID,
			Motion:    session.Motion,
			Closed:    session.Status == votingentities.SessionClosed || session.Status == votingentities.SessionSubmitted,
		}
		if session.Result != nil {
			ref.Result = string(*session.Result)
		}
		return ref, true, nil
	}
	return assemblyports.SessionRef{}, false, nil
}

// assemblyAgreements spawns agreements from approved assembly agenda items.
// Assembly resolutions are binding, hence category Legal at high priority.
type assemblyAgreements struct {
	agreements agreementapp.Service
}

func (a assemblyAgreements) CreateFromAssembly(ctx context.Context, derived assemblyports.DerivedAgreement) error {
	exists, err := agreementExists(ctx, a.agreements, agreemententities.SourceAssembly, derived.SourceRef, derived.Topic)
	if err != nil || exists {
		return err
	}
	_, err = a.agreements.Create(ctx, agreementapp.CreateAgreementCommand{
		SourceType:    agreemententities.SourceAssembly,
		SourceRef:     derived.SourceRef,
		Title:         derived.Topic,
		Description:   derived.Description,
		AgreementDate: derived.AgreementDate,
		DueDate:       derived.DueDate,
		Category:      agreemententities.CategoryLegal,
		Priority:      agreemententities.PriorityHigh,
		ResponsibleID: derived.ResponsibleID,
	})
	return err
}

// meetingAgreements spawns agreements from decided committee agenda items.
type meetingAgreements struct {
	agreements agreementapp.Service
}

func (a meetingAgreements) CreateFromMeeting(ctx context.Context, derived meetingports.DerivedAgreement) error {
	exists, err := agreementExists(ctx, a.agreements, agreemententities.SourceCommitteeMeeting, derived.SourceRef, derived.Topic)
	if err != nil || exists {
		return err
	}
	_, err = a.agreements.Create(ctx, agreementapp.CreateAgreementCommand{
		SourceType:    agreemententities.SourceCommitteeMeeting,
		SourceRef:     derived.SourceRef,
		Title:         derived.Topic,
		Description:   derived.Decision,
		AgreementDate: derived.AgreementDate,
		DueDate:       derived.DueDate,
		Category:      agreemententities.Category(derived.Category),
		Priority:      agreemententities.PriorityMedium,
		ResponsibleID: derived.ResponsibleID,
	})
	return err
}

// agreementExists guards derivation against submit retries: a failure midway
// through a multi-item derivation leaves earlier agreements persisted, and the
// retry must skip those instead of duplicating them.
func agreementExists(ctx context.Context, agreements agreementapp.Service, sourceType agreemententities.SourceType, sourceRef string, title string) (bool, error) {
	existing, err := agreements.BySource(ctx, sourceType, sourceRef)
	if err != nil {
		return false, err
	}
	for _, agreement := range existing {
		if agreement.Title == strings.TrimSpace(title) {
			return true, nil
		}
	}
	return false, nil
}

// scheduledMeetings materializes schedule entries as committee meetings.
type scheduledMeetings struct {
	meetings meetingapp.Service
}

func (m scheduledMeetings) CreateScheduled(ctx context.Context, scheduled schedulerports.ScheduledMeeting) (string, error) {
	agenda := make([]meetingapp.AgendaItemInput, 0, len(scheduled.SuggestedTopics))
	for _, topic := range scheduled.SuggestedTopics {
		agenda = append(agenda, meetingapp.AgendaItemInput{Topic: topic})
	}
	meeting, err := m.meetings.Schedule(ctx, meetingapp.ScheduleMeetingCommand{
		Title:               scheduled.Title,
		Date:                scheduled.Date,
		Type:                scheduled.MeetingType,
		Format:              meetingentities.FormatInPerson,
		PhysicalSpace:       materializedMeetingSpace,
		Agenda:              agenda,
		ScheduledFromSeries: scheduled.SeriesRef,
	})
	if err != nil {
		return "", err
	}
	return meeting.MeetingID, nil
}

// pollAudience resolves poll audiences from the member and property
// registries.
type pollAudience struct {
	members  memberports.MemberRepository
	registry propertyports.Registry
}

func (a pollAudience) CommitteeMemberIDs(ctx context.Context) ([]string, error) {
	members, err := a.members.ListMembers(ctx, true)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.MemberID)
	}
	return ids, nil
}

func (a pollAudience) OwnerIDs(ctx context.Context) ([]string, error) {
	properties, err := a.registry.ListActiveProperties(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(properties))
	for _, property := range properties {
		ids = append(ids, property.PropertyID)
	}
	return ids, nil
}

func (a pollAudience) ResidentOwnerIDs(ctx context.Context) ([]string, error) {
	properties, err := a.registry.ListActiveProperties(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, property := range properties {
		if property.Resident() {
			ids = append(ids, property.PropertyID)
		}
	}
	return ids, nil
}

var (
	_ assemblyports.PropertyDirectory = propertyRefDirectory{}
	_ votingports.PropertyDirectory   = ownershipDirectory{}
	_ memberports.PropertyDirectory   = memberPropertyDirectory{}
	_ votingports.AssemblyDirectory   = assemblyDirectory{}
	_ votingports.CertifierDirectory  = certifierDirectory{}
	_ assemblyports.SessionDirectory  = sessionDirectory{}
	_ assemblyports.AgreementCreator  = assemblyAgreements{}
	_ meetingports.AgreementCreator   = meetingAgreements{}
	_ schedulerports.MeetingCreator   = scheduledMeetings{}
	_ pollports.AudienceDirectory     = pollAudience{}
)
