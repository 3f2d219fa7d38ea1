package msgs

type GeneralStatus struct {
	RunModeActive        bool `cbor:"run_mode_active"`
	DeviceError          bool `cbor:"device_error"`
	ApplicationError     bool `cbor:"application_error"`
	ContaminationWarning bool `cbor:"contamination_warning"`
	ContaminationError   bool `cbor:"contamination_error"`
	DeadZoneDetection    bool `cbor:"dead_zone_detection"`
	TemperatureWarning   bool `cbor:"temperature_warning"`
	WaitForInput         bool `cbor:"wait_for_input"`
	WaitForCluster       bool `cbor:"wait_for_cluster"`
}

type ActiveMonitoringCase struct {
	MonitoringCase1 uint8 `cbor:"monitoring_case_1"`
	MonitoringCase2 uint8 `cbor:"monitoring_case_2"`
	MonitoringCase3 uint8 `cbor:"monitoring_case_3"`
	MonitoringCase4 uint8 `cbor:"monitoring_case_4"`
}

type DeviceStatus struct {
	Header               Header               `cbor:"header"`
	Status               uint8                `cbor:"status"`
	GeneralStatus        GeneralStatus        `cbor:"general_status"`
	COPNonSafetyRelated  uint32               `cbor:"cop_non_safety_related"`
	COPSafetyRelated     uint32               `cbor:"cop_safety_related"`
	COPResetRequired     uint32               `cbor:"cop_reset_required"`
	ActiveMonitoringCase ActiveMonitoringCase `cbor:"active_monitoring_case"`
	ContaminationLevel   uint8                `cbor:"contamination_level"`
}

type PinValues struct {
	Pin5 bool `cbor:"pin_5"`
	Pin6 bool `cbor:"pin_6"`
	Pin7 bool `cbor:"pin_7"`
	Pin8 bool `cbor:"pin_8"`
}

type OSSDsState struct {
	OSSD1A bool `cbor:"ossd1a"`
	OSSD1B bool `cbor:"ossd1b"`
	OSSD2A bool `cbor:"ossd2a"`
	OSSD2B bool `cbor:"ossd2b"`
}

type CameraIO struct {
	Header            Header     `cbor:"header"`
	Configured        PinValues  `cbor:"configured"`
	Direction         PinValues  `cbor:"direction"`
	InputValues       PinValues  `cbor:"input_values"`
	OutputValues      PinValues  `cbor:"output_values"`
	OSSDsState        OSSDsState `cbor:"ossds_state"`
	OSSDsDynCount     uint8      `cbor:"ossds_dyn_count"`
	OSSDsCRC          uint8      `cbor:"ossds_crc"`
	OSSDsIOStatus     uint8      `cbor:"ossds_io_status"`
	DynamicSpeedA     uint16     `cbor:"dynamic_speed_a"`
	DynamicSpeedB     uint16     `cbor:"dynamic_speed_b"`
	DynamicValidFlags uint16     `cbor:"dynamic_valid_flags"`
}

type ROIResultData struct {
	DistanceSafe  bool  `cbor:"distance_safe"`
	DistanceValid bool  `cbor:"distance_valid"`
	ResultSafe    bool  `cbor:"result_safe"`
	ResultValid   bool  `cbor:"result_valid"`
	TaskResult    uint8 `cbor:"task_result"`
}

type ROISafetyData struct {
	InvalidDueToInvalidPixels              bool  `cbor:"invalid_due_to_invalid_pixels"`
	InvalidDueToVariance                   bool  `cbor:"invalid_due_to_variance"`
	InvalidDueToOverexposure               bool  `cbor:"invalid_due_to_overexposure"`
	InvalidDueToUnderexposure              bool  `cbor:"invalid_due_to_underexposure"`
	InvalidDueToTemporalVariance           bool  `cbor:"invalid_due_to_temporal_variance"`
	InvalidDueToOutsideOfMeasurementRange  bool  `cbor:"invalid_due_to_outside_of_measurement_range"`
	InvalidDueToRetroReflectorInterference bool  `cbor:"invalid_due_to_retro_reflector_interference"`
	ContaminationError                     bool  `cbor:"contamination_error"`
	QualityClass                           uint8 `cbor:"quality_class"`
	SlotActive                             bool  `cbor:"slot_active"`
}

type ROI struct {
	ID            uint8         `cbor:"id"`
	DistanceValue uint16        `cbor:"distance_value"`
	ResultData    ROIResultData `cbor:"result_data"`
	SafetyData    ROISafetyData `cbor:"safety_data"`
}

type ROIArray struct {
	Header Header `cbor:"header"`
	ROIs   []ROI  `cbor:"rois"`
}

type FieldInformation struct {
	FieldID     uint16 `cbor:"field_id"`
	FieldSetID  uint16 `cbor:"field_set_id"`
	FieldActive uint8  `cbor:"field_active"`
	FieldResult uint8  `cbor:"field_result"`
	EvalMethod  uint8  `cbor:"eval_method"`
}

type FieldInformationArray struct {
	Header Header             `cbor:"header"`
	Fields []FieldInformation `cbor:"fields"`
}

func (m *DeviceStatus) TypeName() string { return "sick_safevisionary_msgs/DeviceStatus" }
func (m *CameraIO) TypeName() string     { return "sick_safevisionary_msgs/CameraIO" }
func (m *ROIArray) TypeName() string     { return "sick_safevisionary_msgs/ROIArray" }
func (m *FieldInformationArray) TypeName() string {
	return "sick_safevisionary_msgs/FieldInformationArray"
}

func (m *DeviceStatus) GetHeader() Header          { return m.Header }
func (m *CameraIO) GetHeader() Header              { return m.Header }
func (m *ROIArray) GetHeader() Header              { return m.Header }
func (m *FieldInformationArray) GetHeader() Header { return m.Header }
