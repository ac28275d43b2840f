// Package admin is a client for the OpenLumify administration routes.
//
// Every method maps to exactly one HTTP call:
//
//	VertexDelete             POST->HTML /admin/deleteVertex
//	EdgeDelete               POST->HTML /admin/deleteEdge
//	Plugins                  GET        /admin/plugins
//	SystemNotificationCreate POST       /notification/system
//	SystemNotificationDelete DELETE     /notification/system
//	UserDelete               POST       /user/delete
//	WorkspaceShare           POST       /workspace/shareWithMe
//	WorkspaceImport          POST->HTML /admin/workspace/import (multipart)
//
// Errors from the transport.Requester are returned unchanged.
package admin
