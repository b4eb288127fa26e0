// Package memberregistry implements the canonical roster of committee
// members inside the governance context.
//
// The module owns member lifecycle (appointment, role change, deactivation),
// enforces the single-holder rule for President/Secretary/Treasurer, and
// derives the permission bundle and position weight from the role on every
// save. It is the single source of truth for governance permissions.
package memberregistry
