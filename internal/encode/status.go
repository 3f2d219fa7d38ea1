package encode

import (
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

// fieldMapping copies one leaf field. dst is the destination path in wire
// names, src the source path in frame field names.
type fieldMapping[D, S any] struct {
	dst  string
	src  string
	copy func(d *D, s *S)
}

type (
	deviceStatusMapping = fieldMapping[msgs.DeviceStatus, frame.DeviceStatus]
	cameraIOMapping     = fieldMapping[msgs.CameraIO, frame.LocalIO]
)

var deviceStatusFields = []deviceStatusMapping{
	{"status", "State", func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.Status = uint8(s.State) }},

	{"general_status.run_mode_active", "General.RunModeActive",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.RunModeActive = s.General.RunModeActive
		}},
	{"general_status.device_error", "General.DeviceError",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.GeneralStatus.DeviceError = s.General.DeviceError }},
	{"general_status.application_error", "General.ApplicationError",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.ApplicationError = s.General.ApplicationError
		}},
	{"general_status.contamination_warning", "General.ContaminationWarning",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.ContaminationWarning = s.General.ContaminationWarning
		}},
	{"general_status.contamination_error", "General.ContaminationError",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.ContaminationError = s.General.ContaminationError
		}},
	{"general_status.dead_zone_detection", "General.DeadZoneDetection",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.DeadZoneDetection = s.General.DeadZoneDetection
		}},
	{"general_status.temperature_warning", "General.TemperatureWarning",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.TemperatureWarning = s.General.TemperatureWarning
		}},
	{"general_status.wait_for_input", "General.WaitForInput",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.WaitForInput = s.General.WaitForInput
		}},
	{"general_status.wait_for_cluster", "General.WaitForCluster",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.GeneralStatus.WaitForCluster = s.General.WaitForCluster
		}},

	{"cop_non_safety_related", "COPNonSafetyRelated",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.COPNonSafetyRelated = s.COPNonSafetyRelated }},
	{"cop_safety_related", "COPSafetyRelated",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.COPSafetyRelated = s.COPSafetyRelated }},
	{"cop_reset_required", "COPResetRequired",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.COPResetRequired = s.COPResetRequired }},

	{"active_monitoring_case.monitoring_case_1", "ActiveMonitoring.Case1",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.ActiveMonitoringCase.MonitoringCase1 = s.ActiveMonitoring.Case1
		}},
	{"active_monitoring_case.monitoring_case_2", "ActiveMonitoring.Case2",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.ActiveMonitoringCase.MonitoringCase2 = s.ActiveMonitoring.Case2
		}},
	{"active_monitoring_case.monitoring_case_3", "ActiveMonitoring.Case3",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.ActiveMonitoringCase.MonitoringCase3 = s.ActiveMonitoring.Case3
		}},
	{"active_monitoring_case.monitoring_case_4", "ActiveMonitoring.Case4",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) {
			d.ActiveMonitoringCase.MonitoringCase4 = s.ActiveMonitoring.Case4
		}},

	{"contamination_level", "ContaminationLevel",
		func(d *msgs.DeviceStatus, s *frame.DeviceStatus) { d.ContaminationLevel = s.ContaminationLevel }},
}

var cameraIOFields = []cameraIOMapping{
	{"configured.pin_5", "Configured.Pin5", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Configured.Pin5 = s.Configured.Pin5 }},
	{"configured.pin_6", "Configured.Pin6", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Configured.Pin6 = s.Configured.Pin6 }},
	{"configured.pin_7", "Configured.Pin7", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Configured.Pin7 = s.Configured.Pin7 }},
	{"configured.pin_8", "Configured.Pin8", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Configured.Pin8 = s.Configured.Pin8 }},

	{"direction.pin_5", "Direction.Pin5", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Direction.Pin5 = s.Direction.Pin5 }},
	{"direction.pin_6", "Direction.Pin6", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Direction.Pin6 = s.Direction.Pin6 }},
	{"direction.pin_7", "Direction.Pin7", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Direction.Pin7 = s.Direction.Pin7 }},
	{"direction.pin_8", "Direction.Pin8", func(d *msgs.CameraIO, s *frame.LocalIO) { d.Direction.Pin8 = s.Direction.Pin8 }},

	{"input_values.pin_5", "InputValue.Pin5", func(d *msgs.CameraIO, s *frame.LocalIO) { d.InputValues.Pin5 = s.InputValue.Pin5 }},
	{"input_values.pin_6", "InputValue.Pin6", func(d *msgs.CameraIO, s *frame.LocalIO) { d.InputValues.Pin6 = s.InputValue.Pin6 }},
	{"input_values.pin_7", "InputValue.Pin7", func(d *msgs.CameraIO, s *frame.LocalIO) { d.InputValues.Pin7 = s.InputValue.Pin7 }},
	{"input_values.pin_8", "InputValue.Pin8", func(d *msgs.CameraIO, s *frame.LocalIO) { d.InputValues.Pin8 = s.InputValue.Pin8 }},

	{"output_values.pin_5", "OutputValue.Pin5", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OutputValues.Pin5 = s.OutputValue.Pin5 }},
	{"output_values.pin_6", "OutputValue.Pin6", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OutputValues.Pin6 = s.OutputValue.Pin6 }},
	{"output_values.pin_7", "OutputValue.Pin7", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OutputValues.Pin7 = s.OutputValue.Pin7 }},
	{"output_values.pin_8", "OutputValue.Pin8", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OutputValues.Pin8 = s.OutputValue.Pin8 }},

	{"ossds_state.ossd1a", "OSSDs.OSSD1A", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsState.OSSD1A = s.OSSDs.OSSD1A }},
	{"ossds_state.ossd1b", "OSSDs.OSSD1B", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsState.OSSD1B = s.OSSDs.OSSD1B }},
	{"ossds_state.ossd2a", "OSSDs.OSSD2A", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsState.OSSD2A = s.OSSDs.OSSD2A }},
	{"ossds_state.ossd2b", "OSSDs.OSSD2B", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsState.OSSD2B = s.OSSDs.OSSD2B }},

	{"ossds_dyn_count", "OSSDsDynCount", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsDynCount = s.OSSDsDynCount }},
	{"ossds_crc", "OSSDsCRC", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsCRC = s.OSSDsCRC }},
	{"ossds_io_status", "OSSDsIOStatus", func(d *msgs.CameraIO, s *frame.LocalIO) { d.OSSDsIOStatus = s.OSSDsIOStatus }},
	{"dynamic_speed_a", "DynamicSpeedA", func(d *msgs.CameraIO, s *frame.LocalIO) { d.DynamicSpeedA = s.DynamicSpeedA }},
	{"dynamic_speed_b", "DynamicSpeedB", func(d *msgs.CameraIO, s *frame.LocalIO) { d.DynamicSpeedB = s.DynamicSpeedB }},
	{"dynamic_valid_flags", "DynamicValidFlags",
		func(d *msgs.CameraIO, s *frame.LocalIO) { d.DynamicValidFlags = s.DynamicValidFlags }},
}

// DeviceStatus copies the device status record field by field.
func DeviceStatus(header msgs.Header, status frame.DeviceStatus) *msgs.DeviceStatus {
	msg := &msgs.DeviceStatus{Header: header}
	for _, f := range deviceStatusFields {
		f.copy(msg, &status)
	}
	return msg
}

// CameraIO copies the local I/O record field by field.
func CameraIO(header msgs.Header, io frame.LocalIO) *msgs.CameraIO {
	msg := &msgs.CameraIO{Header: header}
	for _, f := range cameraIOFields {
		f.copy(msg, &io)
	}
	return msg
}
